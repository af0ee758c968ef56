package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/header"
)

func stage(env string, mutate func(*config.BaseConfig)) Stage {
	spec := config.BaseConfig{
		AppVersion:       "v1.4.2",
		LogLevel:         config.LogLevelInfo,
		Replicas:         3,
		ResourceRequests: config.Resources{CPU: config.MustParseQuantity("100m"), Memory: config.MustParseQuantity("128Mi")},
		ResourceLimits:   config.Resources{CPU: config.MustParseQuantity("500m"), Memory: config.MustParseQuantity("512Mi")},
		IngressHost:      env + ".example.com",
		Autoscaling: config.Autoscaling{
			MinReplicas:     1,
			MaxReplicas:     10,
			CPUThresholdPct: 70,
			MemThresholdPct: 80,
		},
	}
	if mutate != nil {
		mutate(&spec)
	}
	return Stage{Environment: env, Config: config.NewResolvedConfig(env, &spec)}
}

// Capacity rising and thresholds tightening toward production is the
// canonical passing pipeline.
func TestCheckPass(t *testing.T) {
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) {
			c.Autoscaling.MinReplicas = 1
			c.Autoscaling.CPUThresholdPct = 70
		}),
		stage("production", func(c *config.BaseConfig) {
			c.Autoscaling.MinReplicas = 3
			c.Autoscaling.CPUThresholdPct = 60
		}),
	}

	report, err := New().Check(stages)
	require.NoError(t, err)

	assert.Equal(t, header.KindPromotionReport, report.Kind)
	assert.Equal(t, config.APIVersion, report.APIVersion)
	assert.Equal(t, []string{"staging", "production"}, report.Pipeline)
	assert.Equal(t, StatusPass, report.Summary.Status)
	assert.Equal(t, 2, report.Summary.Stages)
	assert.Empty(t, report.Violations)
	assert.True(t, report.Passed())
}

// A CPU threshold loosening from 60 to 70 across the staging→production
// boundary is exactly one violation.
func TestCheckThresholdLoosens(t *testing.T) {
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) {
			c.Autoscaling.CPUThresholdPct = 60
		}),
		stage("production", func(c *config.BaseConfig) {
			c.Autoscaling.CPUThresholdPct = 70
		}),
	}

	report, err := New().Check(stages)
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, "autoscaling.cpuThresholdPct", v.Field)
	assert.Equal(t, OperatorLTE, v.Op)
	assert.Equal(t, "staging", v.From)
	assert.Equal(t, "production", v.To)
	assert.Equal(t, "60", v.FromValue)
	assert.Equal(t, "70", v.ToValue)
	assert.Equal(t, StatusFail, report.Summary.Status)
	assert.False(t, report.Passed())
}

func TestCheckMinReplicasShrinks(t *testing.T) {
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) { c.Autoscaling.MinReplicas = 3 }),
		stage("production", func(c *config.BaseConfig) { c.Autoscaling.MinReplicas = 1 }),
	}

	report, err := New().Check(stages)
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "autoscaling.minReplicas", report.Violations[0].Field)
	assert.Equal(t, OperatorGTE, report.Violations[0].Op)
}

// Equal values satisfy both operators; holding a field steady across a
// promotion is always allowed.
func TestCheckEqualValuesPass(t *testing.T) {
	stages := []Stage{stage("dev", nil), stage("staging", nil), stage("production", nil)}

	report, err := New().Check(stages)
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 3, report.Summary.Stages)
}

// Adjacency only: dev→staging may regress relative to what staging→production
// later restores, and each pair is judged on its own.
func TestCheckThreeStageCollectsPerPair(t *testing.T) {
	stages := []Stage{
		stage("dev", func(c *config.BaseConfig) { c.Autoscaling.MinReplicas = 2 }),
		stage("staging", func(c *config.BaseConfig) {
			c.Autoscaling.MinReplicas = 1
			c.Autoscaling.MemThresholdPct = 90
		}),
		stage("production", func(c *config.BaseConfig) { c.Autoscaling.MinReplicas = 4 }),
	}

	report, err := New().Check(stages)
	require.NoError(t, err)

	require.Len(t, report.Violations, 2)
	assert.Equal(t, "autoscaling.minReplicas", report.Violations[0].Field)
	assert.Equal(t, "dev", report.Violations[0].From)
	assert.Equal(t, "staging", report.Violations[0].To)
	assert.Equal(t, "autoscaling.memThresholdPct", report.Violations[1].Field)
	assert.Equal(t, "staging", report.Violations[1].From)
	assert.Equal(t, "production", report.Violations[1].To)
}

func TestCheckCustomRules(t *testing.T) {
	rules := []Rule{
		{Field: "replicas", Op: OperatorGTE},
		{Field: "resourceLimits.memory", Op: OperatorGTE},
	}
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) {
			c.Replicas = 2
			c.ResourceLimits.Memory = config.MustParseQuantity("512Mi")
		}),
		stage("production", func(c *config.BaseConfig) {
			c.Replicas = 5
			c.ResourceLimits.Memory = config.MustParseQuantity("256Mi")
		}),
	}

	report, err := New(WithRules(rules)).Check(stages)
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "resourceLimits.memory", report.Violations[0].Field)
	assert.Equal(t, "512Mi", report.Violations[0].FromValue)
	assert.Equal(t, "256Mi", report.Violations[0].ToValue)
	assert.Equal(t, 2, report.Summary.Rules)
}

// Quantity comparison is numeric across units: 1Gi > 512Mi.
func TestCheckQuantityUnits(t *testing.T) {
	rules := []Rule{{Field: "resourceRequests.memory", Op: OperatorGTE}}
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) {
			c.ResourceRequests.Memory = config.MustParseQuantity("512Mi")
		}),
		stage("production", func(c *config.BaseConfig) {
			c.ResourceRequests.Memory = config.MustParseQuantity("1Gi")
		}),
	}

	report, err := New(WithRules(rules)).Check(stages)
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
}

func TestCheckAppVersionRule(t *testing.T) {
	rules := []Rule{{Field: "appVersion", Op: OperatorLTE, Description: "production never runs ahead of staging"}}
	stages := []Stage{
		stage("staging", func(c *config.BaseConfig) { c.AppVersion = "v1.4.2" }),
		stage("production", func(c *config.BaseConfig) { c.AppVersion = "v1.5.0" }),
	}

	report, err := New(WithRules(rules)).Check(stages)
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "production never runs ahead of staging", report.Violations[0].Rule)
}

func TestCheckShortPipelines(t *testing.T) {
	report, err := New().Check([]Stage{stage("production", nil)})
	require.NoError(t, err)
	assert.Equal(t, StatusPass, report.Summary.Status)
	assert.Empty(t, report.Violations)

	report, err = New().Check(nil)
	require.NoError(t, err)
	assert.Equal(t, StatusPass, report.Summary.Status)
	assert.Equal(t, 0, report.Summary.Stages)
}

func TestCheckInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		seq    *Sequencer
		stages []Stage
	}{
		{
			name:   "nil stage config",
			seq:    New(),
			stages: []Stage{{Environment: "staging"}},
		},
		{
			name:   "empty environment",
			seq:    New(),
			stages: []Stage{{Environment: "", Config: stage("x", nil).Config}},
		},
		{
			name:   "duplicate environment",
			seq:    New(),
			stages: []Stage{stage("staging", nil), stage("staging", nil)},
		},
		{
			name:   "unknown rule field",
			seq:    New(WithRules([]Rule{{Field: "ingresHost", Op: OperatorGTE}})),
			stages: []Stage{stage("staging", nil), stage("production", nil)},
		},
		{
			name:   "invalid operator",
			seq:    New(WithRules([]Rule{{Field: "replicas", Op: ">"}})),
			stages: []Stage{stage("staging", nil), stage("production", nil)},
		},
		{
			name:   "empty rule set",
			seq:    New(WithRules(nil)),
			stages: []Stage{stage("staging", nil), stage("production", nil)},
		},
		{
			name: "unparsable appVersion",
			seq:  New(WithRules([]Rule{{Field: "appVersion", Op: OperatorGTE}})),
			stages: []Stage{
				stage("staging", func(c *config.BaseConfig) { c.AppVersion = "not-a-version" }),
				stage("production", nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := tt.seq.Check(tt.stages)
			require.Error(t, err)
			assert.Nil(t, report)
		})
	}
}

func TestCheckVersionMetadata(t *testing.T) {
	report, err := New(WithVersion("v0.3.1")).Check([]Stage{stage("staging", nil), stage("production", nil)})
	require.NoError(t, err)
	assert.Equal(t, "v0.3.1", report.Metadata["version"])
}
