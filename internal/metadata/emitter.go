package metadata

import (
	"log/slog"
	"strconv"

	"github.com/listenupapp/traitmint/internal/combination"
)

// Store persists encoded records by item id.
type Store interface {
	Save(id string, data []byte) error
	Get(id string) ([]byte, error)
	Path(id string) string
}

// Emitter writes one record file per item.
type Emitter struct {
	store    Store
	template Template
	logger   *slog.Logger
}

// NewEmitter creates an Emitter that writes through store.
func NewEmitter(store Store, template Template, logger *slog.Logger) *Emitter {
	return &Emitter{
		store:    store,
		template: template,
		logger:   logger,
	}
}

// Record builds the record for id without writing it.
func (e *Emitter) Record(id int, combo combination.Combination) Record {
	return e.template.Build(id, combo)
}

// Write encodes rec and stores it as <id>.json, replacing any existing file.
func (e *Emitter) Write(id int, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	key := strconv.Itoa(id)
	if err := e.store.Save(key, data); err != nil {
		return err
	}

	e.logger.Debug("wrote metadata", "id", id, "path", e.store.Path(key))
	return nil
}

// Emit builds and writes the record for id.
func (e *Emitter) Emit(id int, combo combination.Combination) (Record, error) {
	rec := e.Record(id, combo)
	if err := e.Write(id, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Read loads the stored record for id.
func (e *Emitter) Read(id int) (Record, error) {
	data, err := e.store.Get(strconv.Itoa(id))
	if err != nil {
		return Record{}, err
	}
	return Decode(data)
}
