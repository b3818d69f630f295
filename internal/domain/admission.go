package domain

import (
	"context"
	"errors"
	"time"
)

// AdmissionEvent describes one rate-limit decision for a route group.
type AdmissionEvent struct {
	Group   string
	Allowed bool
	Method  string
	Path    string
	At      time.Time
}

// AdmissionRecorder stores rate-limit decisions. Recording is best-effort;
// callers must not fail a request because Record returned an error.
type AdmissionRecorder interface {
	Record(ctx context.Context, ev AdmissionEvent) error
}

// AdmissionRecorders fans each event out to every non-nil recorder and
// joins their errors.
type AdmissionRecorders []AdmissionRecorder

func (rs AdmissionRecorders) Record(ctx context.Context, ev AdmissionEvent) error {
	var errs []error
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
