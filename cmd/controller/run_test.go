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

package controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dc-tec/spark-operator/internal/constants"
	"github.com/dc-tec/spark-operator/internal/productconfig"
)

func Test_parseFlags_Defaults(t *testing.T) {
	t.Setenv(constants.EnvProductConfigPath, "")
	t.Setenv(constants.EnvWatchNamespace, "")

	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.metricsAddr != ":8443" {
		t.Errorf("metricsAddr = %q, want :8443", o.metricsAddr)
	}
	if o.probeAddr != ":8081" {
		t.Errorf("probeAddr = %q, want :8081", o.probeAddr)
	}
	if o.enableLeaderElection {
		t.Errorf("enableLeaderElection = true, want false")
	}
	if !o.secureMetrics {
		t.Errorf("secureMetrics = false, want true")
	}
	if o.productConfigPath != "" || o.watchNamespace != "" {
		t.Errorf("unexpected product config %q or namespace %q", o.productConfigPath, o.watchNamespace)
	}
	if len(o.cacheOptions().DefaultNamespaces) != 0 {
		t.Errorf("expected cluster wide cache")
	}
}

func Test_parseFlags_EnvFallbackAndOverride(t *testing.T) {
	t.Setenv(constants.EnvProductConfigPath, "/etc/spark/rules.hcl")
	t.Setenv(constants.EnvWatchNamespace, "spark")

	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.productConfigPath != "/etc/spark/rules.hcl" {
		t.Errorf("productConfigPath = %q", o.productConfigPath)
	}
	if _, ok := o.cacheOptions().DefaultNamespaces["spark"]; !ok {
		t.Errorf("expected cache scoped to namespace spark")
	}

	o, err = parseFlags([]string{"--product-config=/tmp/other.hcl", "--leader-elect", "--metrics-secure=false"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.productConfigPath != "/tmp/other.hcl" {
		t.Errorf("productConfigPath = %q, want flag value", o.productConfigPath)
	}
	if !o.enableLeaderElection || o.secureMetrics {
		t.Errorf("leader-elect = %v, metrics-secure = %v", o.enableLeaderElection, o.secureMetrics)
	}
	if o.metricsServerOptions().FilterProvider != nil {
		t.Errorf("expected no auth filter for insecure metrics")
	}
}

func Test_parseFlags_UnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"--no-such-flag"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func Test_metricsServerOptions_HTTP2Disabled(t *testing.T) {
	o, err := parseFlags([]string{"--metrics-cert-path=/certs"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	m := o.metricsServerOptions()
	if len(m.TLSOpts) != 1 {
		t.Fatalf("TLSOpts = %d, want 1", len(m.TLSOpts))
	}
	if m.CertDir != "/certs" || m.CertName != "tls.crt" || m.KeyName != "tls.key" {
		t.Errorf("unexpected cert settings: %q %q %q", m.CertDir, m.CertName, m.KeyName)
	}
	if m.FilterProvider == nil {
		t.Errorf("expected auth filter for secure metrics")
	}
}

func Test_loadValidator_Embedded(t *testing.T) {
	rs, err := loadValidator("")
	if err != nil {
		t.Fatalf("loadValidator() error = %v", err)
	}
	got := rs.Validate("3.0.1", productconfig.Environment(), "master", map[string]string{"SPARK_MASTER_PORT": "7078"})
	if got["SPARK_MASTER_PORT"] != productconfig.Valid("7078") {
		t.Errorf("SPARK_MASTER_PORT = %+v", got["SPARK_MASTER_PORT"])
	}
}

func Test_loadValidator_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.hcl")
	src := `
property "spark.port.maxRetries" {
  kind = "properties"
  file = "spark-defaults.conf"
  type = "number"
  min  = 4
}
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rs, err := loadValidator(path)
	if err != nil {
		t.Fatalf("loadValidator() error = %v", err)
	}
	got := rs.Validate("3.0.1", productconfig.Properties("spark-defaults.conf"), "master",
		map[string]string{"spark.port.maxRetries": "2"})
	if got["spark.port.maxRetries"].Type != productconfig.TypeError {
		t.Errorf("spark.port.maxRetries = %+v, want error", got["spark.port.maxRetries"])
	}
}

func Test_loadValidator_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.hcl")
	if err := os.WriteFile(path, []byte(`property {`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := loadValidator(path); err == nil {
		t.Fatalf("expected error for broken rule table")
	}
	if _, err := loadValidator(filepath.Join(dir, "missing.hcl")); err == nil {
		t.Fatalf("expected error for missing rule table")
	}
}
