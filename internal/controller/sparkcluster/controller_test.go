/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sparkcluster

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	sparkv1alpha1 "github.com/dc-tec/spark-operator/api/v1alpha1"
	"github.com/dc-tec/spark-operator/internal/constants"
	"github.com/dc-tec/spark-operator/internal/productconfig"
	"github.com/dc-tec/spark-operator/internal/render"
	"github.com/dc-tec/spark-operator/internal/revision"
)

var _ = Describe("SparkCluster Controller", func() {
	const (
		clusterName = "demo"
		namespace   = "spark"
	)

	var (
		ctx       context.Context
		k8sClient client.Client
		recorder  *record.FakeRecorder
		rules     *productconfig.RuleSet
	)

	req := reconcile.Request{NamespacedName: types.NamespacedName{Name: clusterName, Namespace: namespace}}

	newCluster := func() *sparkv1alpha1.SparkCluster {
		return &sparkv1alpha1.SparkCluster{
			ObjectMeta: metav1.ObjectMeta{Name: clusterName, Namespace: namespace, Generation: 1},
			Spec: sparkv1alpha1.SparkClusterSpec{
				Version: sparkv1alpha1.SparkVersion301,
				Secret:  ptr.To("s3cr3t"),
				Master: sparkv1alpha1.SparkNode{Selectors: []sparkv1alpha1.SparkNodeSelector{
					{NodeName: "m1", Instances: 1},
					{NodeName: "m2", Instances: 1, MasterPort: ptr.To[int32](7078)},
				}},
				Worker: sparkv1alpha1.SparkNode{Selectors: []sparkv1alpha1.SparkNodeSelector{
					{NodeName: "w1", Instances: 3, Cores: ptr.To[int32](2), Memory: ptr.To("2g")},
				}},
			},
		}
	}

	newReconciler := func() *SparkClusterReconciler {
		return &SparkClusterReconciler{
			Client:    k8sClient,
			Scheme:    testScheme,
			Validator: rules,
			Recorder:  recorder,
		}
	}

	buildClient := func(funcs *interceptor.Funcs, objs ...client.Object) client.Client {
		b := fake.NewClientBuilder().
			WithScheme(testScheme).
			WithStatusSubresource(&sparkv1alpha1.SparkCluster{}).
			WithObjects(objs...)
		if funcs != nil {
			b = b.WithInterceptorFuncs(*funcs)
		}
		return b.Build()
	}

	listConfigMaps := func() []corev1.ConfigMap {
		list := &corev1.ConfigMapList{}
		Expect(k8sClient.List(ctx, list, client.InNamespace(namespace), client.MatchingLabels(render.ClusterLabels(clusterName)))).To(Succeed())
		return list.Items
	}

	hasRoleSeries := func(nodeType sparkv1alpha1.SparkNodeType) bool {
		families, err := ctrlmetrics.Registry.Gather()
		Expect(err).NotTo(HaveOccurred())
		for _, family := range families {
			if family.GetName() != "spark_cluster_selectors" {
				continue
			}
			for _, m := range family.GetMetric() {
				labels := map[string]string{}
				for _, l := range m.GetLabel() {
					labels[l.GetName()] = l.GetValue()
				}
				if labels["namespace"] == namespace && labels["name"] == clusterName && labels["node_type"] == nodeType.String() {
					return true
				}
			}
		}
		return false
	}

	getCluster := func() *sparkv1alpha1.SparkCluster {
		updated := &sparkv1alpha1.SparkCluster{}
		Expect(k8sClient.Get(ctx, req.NamespacedName, updated)).To(Succeed())
		return updated
	}

	BeforeEach(func() {
		ctx = context.Background()
		recorder = record.NewFakeRecorder(32)
		var err error
		rules, err = productconfig.DefaultRuleSet()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("When reconciling a valid cluster", func() {
		BeforeEach(func() {
			k8sClient = buildClient(nil, newCluster())
		})

		It("renders one ConfigMap per replica group", func() {
			result, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(reconcile.Result{}))

			cms := listConfigMaps()
			Expect(cms).To(HaveLen(3))

			cluster := newCluster()
			for _, cm := range cms {
				Expect(cm.Data).To(HaveLen(2))
				Expect(cm.Data).To(HaveKey(constants.SparkDefaultsConf))
				Expect(cm.Data).To(HaveKey(constants.SparkEnvSh))
				Expect(cm.OwnerReferences).To(HaveLen(1))
				Expect(cm.OwnerReferences[0].Name).To(Equal(clusterName))
				Expect(cm.Data[constants.SparkDefaultsConf]).To(ContainSubstring("spark.authenticate true\n"))
				Expect(cm.Data[constants.SparkDefaultsConf]).To(ContainSubstring("spark.authenticate.secret s3cr3t\n"))
				Expect(cm.Annotations).To(HaveKeyWithValue(constants.AnnotationStartupEnv, render.StartupEnv()))
			}

			workerIdentity := revision.SelectorIdentity(sparkv1alpha1.NodeTypeWorker, clusterName, &cluster.Spec.Worker.Selectors[0])
			worker := &corev1.ConfigMap{}
			Expect(k8sClient.Get(ctx, types.NamespacedName{
				Namespace: namespace,
				Name:      render.ConfigMapName(clusterName, sparkv1alpha1.NodeTypeWorker, workerIdentity),
			}, worker)).To(Succeed())
			Expect(worker.Annotations).To(HaveKeyWithValue(constants.AnnotationMasterURL, "spark://m1:7077,m2:7078"))
			Expect(worker.Annotations).To(HaveKeyWithValue(constants.AnnotationStartCommand, "spark-3.0.1-bin-hadoop2.7/sbin/start-slave.sh"))
			Expect(worker.Data[constants.SparkEnvSh]).To(ContainSubstring("SPARK_WORKER_CORES=2\n"))
			Expect(worker.Data[constants.SparkEnvSh]).To(ContainSubstring("SPARK_WORKER_MEMORY=2g\n"))
			Expect(worker.Data[constants.SparkEnvSh]).NotTo(ContainSubstring("SPARK_NO_DAEMONIZE"))

			Eventually(recorder.Events).Should(Receive(ContainSubstring(EventReasonConfigMapsUpdated)))
		})

		It("keeps the required startup environment out of reach of env overrides", func() {
			cluster := newCluster()
			cluster.Spec.Worker.Selectors[0].Env = []sparkv1alpha1.ConfigOption{{Name: constants.EnvSparkNoDaemonize, Value: "false"}}
			k8sClient = buildClient(nil, cluster)

			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			workerIdentity := revision.SelectorIdentity(sparkv1alpha1.NodeTypeWorker, clusterName, &cluster.Spec.Worker.Selectors[0])
			worker := &corev1.ConfigMap{}
			Expect(k8sClient.Get(ctx, types.NamespacedName{
				Namespace: namespace,
				Name:      render.ConfigMapName(clusterName, sparkv1alpha1.NodeTypeWorker, workerIdentity),
			}, worker)).To(Succeed())
			Expect(worker.Annotations[constants.AnnotationStartupEnv]).To(ContainSubstring("SPARK_NO_DAEMONIZE=true\n"))
			Expect(worker.Data[constants.SparkEnvSh]).NotTo(ContainSubstring("SPARK_NO_DAEMONIZE"))
		})

		It("reports status and versions", func() {
			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			updated := getCluster()
			Expect(updated.Status.TargetVersion).To(Equal(sparkv1alpha1.SparkVersion301))
			Expect(updated.Status.CurrentVersion).To(Equal(sparkv1alpha1.SparkVersion301))
			Expect(meta.IsStatusConditionTrue(updated.Status.Conditions, string(sparkv1alpha1.ConditionConfigurationValid))).To(BeTrue())
			Expect(meta.IsStatusConditionTrue(updated.Status.Conditions, string(sparkv1alpha1.ConditionAvailable))).To(BeTrue())
		})

		It("is stable across repeated passes and scaling", func() {
			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			before := listConfigMaps()

			cluster := getCluster()
			cluster.Spec.Worker.Selectors[0].Instances = 10
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())

			_, err = newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			versions := func(cms []corev1.ConfigMap) map[string]string {
				out := make(map[string]string, len(cms))
				for _, cm := range cms {
					out[cm.Name] = cm.ResourceVersion
				}
				return out
			}
			Expect(versions(listConfigMaps())).To(Equal(versions(before)))
		})

		It("prunes ConfigMaps of removed replica groups", func() {
			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(listConfigMaps()).To(HaveLen(3))

			cluster := getCluster()
			removed := cluster.Spec.Master.Selectors[1]
			cluster.Spec.Master.Selectors = cluster.Spec.Master.Selectors[:1]
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())

			_, err = newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			cms := listConfigMaps()
			Expect(cms).To(HaveLen(2))
			staleName := render.ConfigMapName(clusterName, sparkv1alpha1.NodeTypeMaster,
				revision.SelectorIdentity(sparkv1alpha1.NodeTypeMaster, clusterName, &removed))
			for _, cm := range cms {
				Expect(cm.Name).NotTo(Equal(staleName))
				if strings.Contains(cm.Name, "-slave-") {
					Expect(cm.Annotations[constants.AnnotationMasterURL]).To(Equal("spark://m1:7077"))
				}
			}
		})

		It("renders the history server when present", func() {
			cluster := getCluster()
			cluster.Spec.HistoryServer = &sparkv1alpha1.SparkNode{Selectors: []sparkv1alpha1.SparkNodeSelector{
				{NodeName: "h1", Instances: 1, StorePath: ptr.To("/data/history"), HistoryUIPort: ptr.To[int32](18081)},
			}}
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())

			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			var history *corev1.ConfigMap
			for _, cm := range listConfigMaps() {
				if cm.Labels[constants.LabelSparkNodeType] == string(sparkv1alpha1.NodeTypeHistoryServer) {
					history = cm.DeepCopy()
				}
			}
			Expect(history).NotTo(BeNil())
			Expect(history.Data[constants.SparkDefaultsConf]).To(ContainSubstring("spark.history.store.path /data/history\n"))
			Expect(history.Data[constants.SparkDefaultsConf]).To(ContainSubstring("spark.history.ui.port 18081\n"))
			Expect(history.Annotations).NotTo(HaveKey(constants.AnnotationMasterURL))
		})

		It("drops the role metrics of a removed history server", func() {
			cluster := getCluster()
			cluster.Spec.HistoryServer = &sparkv1alpha1.SparkNode{Selectors: []sparkv1alpha1.SparkNodeSelector{
				{NodeName: "h1", Instances: 1},
			}}
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())
			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(hasRoleSeries(sparkv1alpha1.NodeTypeHistoryServer)).To(BeTrue())

			cluster = getCluster()
			cluster.Spec.HistoryServer = nil
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())
			_, err = newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			Expect(hasRoleSeries(sparkv1alpha1.NodeTypeHistoryServer)).To(BeFalse())
			Expect(hasRoleSeries(sparkv1alpha1.NodeTypeWorker)).To(BeTrue())
		})

		It("drops values rejected by the product config", func() {
			cluster := getCluster()
			cluster.Spec.Worker.Selectors[0].Env = []sparkv1alpha1.ConfigOption{{Name: constants.EnvSparkWorkerCores, Value: "zero"}}
			Expect(k8sClient.Update(ctx, cluster)).To(Succeed())

			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			for _, cm := range listConfigMaps() {
				Expect(cm.Data[constants.SparkEnvSh]).NotTo(ContainSubstring(constants.EnvSparkWorkerCores))
			}
		})
	})

	Context("When the spec is invalid", func() {
		BeforeEach(func() {
			cluster := newCluster()
			cluster.Spec.Worker.Selectors[0].NodeName = ""
			k8sClient = buildClient(nil, cluster)
		})

		It("sets ConfigurationValid to False without requeueing", func() {
			result, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(reconcile.Result{}))

			updated := getCluster()
			valid := meta.FindStatusCondition(updated.Status.Conditions, string(sparkv1alpha1.ConditionConfigurationValid))
			Expect(valid).NotTo(BeNil())
			Expect(valid.Status).To(Equal(metav1.ConditionFalse))
			Expect(valid.Reason).To(Equal(string(sparkv1alpha1.ReasonSpecInvalid)))
			Expect(valid.Message).To(ContainSubstring("spec.worker.selectors[0].node_name"))
			Expect(updated.Status.CurrentVersion).To(BeEmpty())

			Expect(listConfigMaps()).To(BeEmpty())
			Eventually(recorder.Events).Should(Receive(ContainSubstring(EventReasonSpecInvalid)))
		})
	})

	Context("When the cluster name is too long for a label value", func() {
		var longReq reconcile.Request

		BeforeEach(func() {
			cluster := newCluster()
			cluster.Name = strings.Repeat("s", 64)
			longReq = reconcile.Request{NamespacedName: types.NamespacedName{Namespace: namespace, Name: cluster.Name}}
			k8sClient = buildClient(nil, cluster)
		})

		It("rejects the cluster before writing any ConfigMap", func() {
			result, err := newReconciler().Reconcile(ctx, longReq)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(reconcile.Result{}))

			updated := &sparkv1alpha1.SparkCluster{}
			Expect(k8sClient.Get(ctx, longReq.NamespacedName, updated)).To(Succeed())
			valid := meta.FindStatusCondition(updated.Status.Conditions, string(sparkv1alpha1.ConditionConfigurationValid))
			Expect(valid).NotTo(BeNil())
			Expect(valid.Status).To(Equal(metav1.ConditionFalse))
			Expect(valid.Message).To(ContainSubstring("metadata.name"))

			list := &corev1.ConfigMapList{}
			Expect(k8sClient.List(ctx, list, client.InNamespace(namespace))).To(Succeed())
			Expect(list.Items).To(BeEmpty())
		})
	})

	Context("When the cluster does not exist", func() {
		BeforeEach(func() {
			k8sClient = buildClient(nil)
		})

		It("returns without error", func() {
			result, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(reconcile.Result{}))
		})
	})

	Context("When the Kubernetes API fails", func() {
		It("requeues transient errors after a short delay", func() {
			k8sClient = buildClient(&interceptor.Funcs{
				Create: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
					if _, ok := obj.(*corev1.ConfigMap); ok {
						return apierrors.NewTooManyRequests("slow down", 1)
					}
					return c.Create(ctx, obj, opts...)
				},
			}, newCluster())

			result, err := newReconciler().Reconcile(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(Equal(constants.RequeueShort))

			available := meta.FindStatusCondition(getCluster().Status.Conditions, string(sparkv1alpha1.ConditionAvailable))
			Expect(available).NotTo(BeNil())
			Expect(available.Status).To(Equal(metav1.ConditionFalse))
			Expect(available.Reason).To(Equal(string(sparkv1alpha1.ReasonConfigMapsFailed)))
		})

		It("returns other errors for backoff", func() {
			k8sClient = buildClient(&interceptor.Funcs{
				Create: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.CreateOption) error {
					if _, ok := obj.(*corev1.ConfigMap); ok {
						return errors.New("admission webhook denied the request")
					}
					return c.Create(ctx, obj, opts...)
				},
			}, newCluster())

			_, err := newReconciler().Reconcile(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("admission webhook denied"))
		})
	})
})
