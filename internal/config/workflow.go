package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvWorkflowReviewInterval      = "CONCLAVE_WORKFLOW_REVIEW_INTERVAL"
	EnvWorkflowCompletionThreshold = "CONCLAVE_WORKFLOW_COMPLETION_THRESHOLD"
	EnvWorkflowDebateWindow        = "CONCLAVE_WORKFLOW_DEBATE_WINDOW"
	EnvWorkflowScribeWindow        = "CONCLAVE_WORKFLOW_SCRIBE_WINDOW"
	EnvWorkflowTopicPrefixLimit    = "CONCLAVE_WORKFLOW_TOPIC_PREFIX_LIMIT"
	EnvWorkflowDefaultTopic        = "CONCLAVE_WORKFLOW_DEFAULT_TOPIC"
)

// WorkflowConfig holds the tunable bounds of the workflow engine: the human
// review cadence, the debate round count that triggers document generation,
// and the transcript windows supplied to agent calls.
type WorkflowConfig struct {
	ReviewInterval      int    `toml:"review_interval"`
	CompletionThreshold int    `toml:"completion_threshold"`
	DebateWindow        int    `toml:"debate_window"`
	ScribeWindow        int    `toml:"scribe_window"`
	TopicPrefixLimit    int    `toml:"topic_prefix_limit"`
	DefaultTopic        string `toml:"default_topic"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.ReviewInterval != 0 {
		c.ReviewInterval = overlay.ReviewInterval
	}
	if overlay.CompletionThreshold != 0 {
		c.CompletionThreshold = overlay.CompletionThreshold
	}
	if overlay.DebateWindow != 0 {
		c.DebateWindow = overlay.DebateWindow
	}
	if overlay.ScribeWindow != 0 {
		c.ScribeWindow = overlay.ScribeWindow
	}
	if overlay.TopicPrefixLimit != 0 {
		c.TopicPrefixLimit = overlay.TopicPrefixLimit
	}
	if overlay.DefaultTopic != "" {
		c.DefaultTopic = overlay.DefaultTopic
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.ReviewInterval == 0 {
		c.ReviewInterval = 3
	}
	if c.CompletionThreshold == 0 {
		c.CompletionThreshold = 9
	}
	if c.DebateWindow == 0 {
		c.DebateWindow = 6
	}
	if c.ScribeWindow == 0 {
		c.ScribeWindow = 10
	}
	if c.TopicPrefixLimit == 0 {
		c.TopicPrefixLimit = 120
	}
	if c.DefaultTopic == "" {
		c.DefaultTopic = "General Architecture and Requirements"
	}
}

func (c *WorkflowConfig) loadEnv() {
	setInt := func(envVar string, target *int) {
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*target = n
			}
		}
	}

	setInt(EnvWorkflowReviewInterval, &c.ReviewInterval)
	setInt(EnvWorkflowCompletionThreshold, &c.CompletionThreshold)
	setInt(EnvWorkflowDebateWindow, &c.DebateWindow)
	setInt(EnvWorkflowScribeWindow, &c.ScribeWindow)
	setInt(EnvWorkflowTopicPrefixLimit, &c.TopicPrefixLimit)

	if v := os.Getenv(EnvWorkflowDefaultTopic); v != "" {
		c.DefaultTopic = v
	}
}

func (c *WorkflowConfig) validate() error {
	if c.ReviewInterval < 1 {
		return fmt.Errorf("invalid review_interval: %d", c.ReviewInterval)
	}
	if c.CompletionThreshold < 1 {
		return fmt.Errorf("invalid completion_threshold: %d", c.CompletionThreshold)
	}
	if c.CompletionThreshold <= c.ReviewInterval {
		return fmt.Errorf(
			"completion_threshold %d must exceed review_interval %d",
			c.CompletionThreshold, c.ReviewInterval,
		)
	}
	if c.DebateWindow < 1 {
		return fmt.Errorf("invalid debate_window: %d", c.DebateWindow)
	}
	if c.ScribeWindow < 1 {
		return fmt.Errorf("invalid scribe_window: %d", c.ScribeWindow)
	}
	if c.TopicPrefixLimit < 1 {
		return fmt.Errorf("invalid topic_prefix_limit: %d", c.TopicPrefixLimit)
	}
	return nil
}
