package lifecycle

// NATS subjects the host publishes lifecycle events on.
const (
	SubjectSave     = "host.save"
	SubjectAutoSave = "host.autosave"
	SubjectLoad     = "host.load"
	SubjectDelete   = "host.delete"
	SubjectGameOver = "host.gameover"
)

// Event is the wire payload for host lifecycle events. Save, autosave
// and load events carry the save file name and challenge flag; delete
// events carry the slot identifier.
type Event struct {
	ID        string `json:"id"`
	Challenge bool   `json:"challenge,omitempty"`
	File      string `json:"file,omitempty"`
	Slot      int    `json:"slot,omitempty"`
}
