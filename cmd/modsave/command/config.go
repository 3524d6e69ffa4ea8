package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Nats     NatsConfig     `json:"nats"`
	Session  SessionConfig  `json:"session"`
	Autosave AutosaveConfig `json:"autosave"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Autosave.validate())

	return el.Err()
}

type SessionConfig struct {
	// Host marks this process as the authoritative owner of the
	// current-save store. Non-host processes only touch the global one.
	Host bool `json:"host"`
}
