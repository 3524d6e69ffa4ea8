package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type AutosaveConfig struct {
	Enabled  bool   `json:"enabled"`
	Interval string `json:"interval"`
}

func (c *AutosaveConfig) validate() error {
	el := errors.NewErrorList()

	if c.Interval != "" {
		d, err := time.ParseDuration(c.Interval)
		if err != nil {
			el.Add(fmt.Errorf("parsing interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("interval must be at least 1 second"))
		}
	}

	return el.Err()
}

func (c *AutosaveConfig) interval() (time.Duration, error) {
	if c.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Interval)
}
