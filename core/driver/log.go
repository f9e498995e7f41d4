package driver

import "github.com/kilianp07/osemosys-il/core/logger"

func (d *Driver) logFor(runID, file string) logger.Logger {
	if d.Log == nil {
		return nil
	}
	w, ok := d.Log.(logger.With)
	if !ok {
		return d.Log
	}
	fields := map[string]any{"run_id": runID}
	if file != "" {
		fields["file"] = file
	}
	return w.With(fields)
}

func (d *Driver) infof(runID, format string, args ...any) {
	if l := d.logFor(runID, ""); l != nil {
		l.Infof(format, args...)
	}
}

func (d *Driver) warnf(runID, file, format string, args ...any) {
	if l := d.logFor(runID, file); l != nil {
		l.Warnf(format, args...)
	}
}

func (d *Driver) errorf(runID, file, format string, args ...any) {
	if l := d.logFor(runID, file); l != nil {
		l.Errorf(format, args...)
	}
}
