package export

import (
	"errors"

	"github.com/rhyton-cad/rhyton"
	"github.com/rhyton-cad/rhyton/pkg/host"
)

// Collect builds one export row per object: the object id under "guid" plus
// its user text. With an explicit key list only those keys are read;
// otherwise every key on the object is included.
func Collect(ut host.UserText, ids []string, keys []string) ([]map[string]string, error) {
	rows := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		row := map[string]string{rhyton.GUIDKey: id}

		objKeys := keys
		if len(objKeys) == 0 {
			all, err := ut.Keys(id)
			if err != nil {
				return nil, err
			}
			objKeys = all
		}

		for _, key := range objKeys {
			value, ok, err := ut.Value(id, key)
			if err != nil {
				return nil, err
			}
			if ok {
				row[key] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WithTemporaryValues tags objects with extra derived values, runs fn, and
// removes the tags again on every exit path. The tags parameter maps object
// id to the key/value pairs to add for the duration of fn.
func WithTemporaryValues(ut host.UserText, tags map[string]map[string]string, fn func() error) error {
	type applied struct{ id, key string }
	var done []applied

	cleanup := func() error {
		var errs []error
		for _, a := range done {
			if err := ut.RemoveValue(a.id, a.key); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	for id, kv := range tags {
		for key, value := range kv {
			if err := ut.SetValue(id, key, value); err != nil {
				cleanupErr := cleanup()
				return errors.Join(err, cleanupErr)
			}
			done = append(done, applied{id: id, key: key})
		}
	}

	err := fn()
	return errors.Join(err, cleanup())
}
