package productconfig

import (
	_ "embed"
	"fmt"
	"math/big"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

//go:embed spark.hcl
var defaultRules []byte

// DefaultRulesFilename is the name the embedded rule table is decoded under.
const DefaultRulesFilename = "spark.hcl"

// hclRuleFile is the on-disk shape of a rule table.
type hclRuleFile struct {
	Properties []hclProperty `hcl:"property,block"`
}

type hclProperty struct {
	Name string `hcl:"name,label"`

	Kind        string   `hcl:"kind"`
	File        *string  `hcl:"file,optional"`
	Roles       []string `hcl:"roles,optional"`
	Versions    *string  `hcl:"versions,optional"`
	Type        *string  `hcl:"type,optional"`
	Default     *string  `hcl:"default,optional"`
	Recommended *string  `hcl:"recommended,optional"`
	Allowed     []string `hcl:"allowed,optional"`
	Pattern     *string  `hcl:"pattern,optional"`
	Min         *float64 `hcl:"min,optional"`
	Max         *float64 `hcl:"max,optional"`
	Deprecated  *bool    `hcl:"deprecated,optional"`
	Message     *string  `hcl:"message,optional"`
}

type rule struct {
	name        string
	kind        OptionKind
	roles       []string
	versions    *semver.Constraints
	valueType   cty.Type
	integer     bool
	def         *string
	recommended *string
	allowed     []string
	pattern     *regexp.Regexp
	min         *big.Float
	max         *big.Float
	deprecated  bool
	message     string
}

// RuleSet is a Validator backed by a table of property rules. It is immutable
// after loading and safe for concurrent use.
type RuleSet struct {
	rules []rule
}

var _ Validator = (*RuleSet)(nil)

// DefaultRuleSet returns the rule table shipped with the operator.
func DefaultRuleSet() (*RuleSet, error) {
	return LoadRuleSet(DefaultRulesFilename, defaultRules)
}

// LoadRuleSet decodes an HCL (or HCL JSON, by ".json" suffix) rule table.
func LoadRuleSet(filename string, src []byte) (*RuleSet, error) {
	var file hclRuleFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, fmt.Errorf("failed to decode product config %s: %w", filename, err)
	}
	return compile(file)
}

// LoadRuleSetFile reads and decodes a rule table from disk.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	var file hclRuleFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, fmt.Errorf("failed to decode product config %s: %w", path, err)
	}
	return compile(file)
}

func compile(file hclRuleFile) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]rule, 0, len(file.Properties))}
	for _, p := range file.Properties {
		r, err := compileProperty(p)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

func compileProperty(p hclProperty) (rule, error) {
	r := rule{
		name:        p.Name,
		roles:       p.Roles,
		def:         p.Default,
		recommended: p.Recommended,
		allowed:     p.Allowed,
		valueType:   cty.String,
	}

	switch TargetKind(p.Kind) {
	case TargetProperties:
		if p.File == nil || *p.File == "" {
			return rule{}, fmt.Errorf("kind %q requires file", p.Kind)
		}
		r.kind = Properties(*p.File)
	case TargetEnvironment:
		r.kind = Environment()
	default:
		return rule{}, fmt.Errorf("unknown kind %q", p.Kind)
	}

	if p.Versions != nil {
		c, err := semver.NewConstraint(*p.Versions)
		if err != nil {
			return rule{}, fmt.Errorf("invalid versions constraint %q: %w", *p.Versions, err)
		}
		r.versions = c
	}

	if p.Type != nil {
		switch *p.Type {
		case "string":
			r.valueType = cty.String
		case "number":
			r.valueType = cty.Number
		case "integer":
			r.valueType = cty.Number
			r.integer = true
		case "bool":
			r.valueType = cty.Bool
		default:
			return rule{}, fmt.Errorf("unknown type %q", *p.Type)
		}
	}

	if p.Pattern != nil {
		re, err := regexp.Compile("^(?:" + *p.Pattern + ")$")
		if err != nil {
			return rule{}, fmt.Errorf("invalid pattern: %w", err)
		}
		r.pattern = re
	}

	if p.Min != nil {
		r.min = big.NewFloat(*p.Min)
	}
	if p.Max != nil {
		r.max = big.NewFloat(*p.Max)
	}
	if (r.min != nil || r.max != nil) && !r.valueType.Equals(cty.Number) {
		return rule{}, fmt.Errorf("min/max require type \"number\" or \"integer\"")
	}

	if p.Deprecated != nil {
		r.deprecated = *p.Deprecated
	}
	if p.Message != nil {
		r.message = *p.Message
	}
	return r, nil
}

// Validate implements Validator.
//
// Every candidate key starts out Valid with its own value. Each rule that
// applies to version, kind and role then replaces that verdict for its key, or
// adds a Recommended or Default entry when the key was not supplied. When two
// rules for the same key apply, the later one in the table wins.
func (rs *RuleSet) Validate(version string, kind OptionKind, role string, candidate map[string]string) map[string]Classification {
	result := make(map[string]Classification, len(candidate))

	v, err := semver.NewVersion(version)
	if err != nil {
		for name, value := range candidate {
			result[name] = Error(&ValidationError{Name: name, Value: value, Reason: fmt.Sprintf("unknown product version %q", version)})
		}
		return result
	}

	for name, value := range candidate {
		result[name] = Valid(value)
	}

	for i := range rs.rules {
		r := &rs.rules[i]
		if !r.appliesTo(v, kind, role) {
			continue
		}
		if value, ok := candidate[r.name]; ok {
			result[r.name] = r.check(value)
			continue
		}
		switch {
		case r.recommended != nil:
			result[r.name] = Recommended(*r.recommended)
		case r.def != nil:
			result[r.name] = Default(*r.def)
		}
	}

	return result
}

func (r *rule) appliesTo(v *semver.Version, kind OptionKind, role string) bool {
	if r.kind != kind {
		return false
	}
	if r.versions != nil && !r.versions.Check(v) {
		return false
	}
	if len(r.roles) > 0 && role != "" && !slices.Contains(r.roles, role) {
		return false
	}
	return true
}

func (r *rule) check(value string) Classification {
	normalized, err := r.convert(value)
	if err != nil {
		return Error(err)
	}

	if len(r.allowed) > 0 && !slices.Contains(r.allowed, normalized) {
		return Error(r.reject(value, fmt.Sprintf("must be one of %s", strings.Join(r.allowed, ", "))))
	}
	if r.pattern != nil && !r.pattern.MatchString(normalized) {
		return Error(r.reject(value, fmt.Sprintf("must match %s", r.pattern.String())))
	}

	if r.deprecated {
		reason := "deprecated"
		if r.message != "" {
			reason = "deprecated: " + r.message
		}
		return Warn(normalized, r.reject(value, reason))
	}
	return Valid(normalized)
}

// convert type-checks value with cty and returns its normalised string form.
func (r *rule) convert(value string) (string, error) {
	switch {
	case r.valueType.Equals(cty.Bool):
		converted, err := convert.Convert(cty.StringVal(strings.ToLower(strings.TrimSpace(value))), cty.Bool)
		if err != nil {
			return "", r.reject(value, "must be a boolean")
		}
		if converted.True() {
			return "true", nil
		}
		return "false", nil
	case r.valueType.Equals(cty.Number):
		converted, err := convert.Convert(cty.StringVal(strings.TrimSpace(value)), cty.Number)
		if err != nil {
			return "", r.reject(value, "must be a number")
		}
		n := converted.AsBigFloat()
		if r.integer && !n.IsInt() {
			return "", r.reject(value, "must be an integer")
		}
		if r.min != nil && n.Cmp(r.min) < 0 {
			return "", r.reject(value, fmt.Sprintf("must be >= %s", r.min.Text('g', -1)))
		}
		if r.max != nil && n.Cmp(r.max) > 0 {
			return "", r.reject(value, fmt.Sprintf("must be <= %s", r.max.Text('g', -1)))
		}
		return strings.TrimSpace(value), nil
	default:
		return value, nil
	}
}

func (r *rule) reject(value, reason string) error {
	return &ValidationError{Name: r.name, Value: value, Reason: reason}
}
