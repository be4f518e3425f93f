package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"room-booking-api/core/logger"
	"room-booking-api/core/utils"
	"room-booking-api/modules/recommendation/entity"

	"github.com/gosimple/slug"
)

// MalformedReporter makes skipped booking records visible outside the cache.
type MalformedReporter interface {
	Report(ctx context.Context, date string, records []entity.MalformedBooking) error
}

// LogReporter writes one warn line per record.
type LogReporter struct{}

func (LogReporter) Report(_ context.Context, date string, records []entity.MalformedBooking) error {
	for _, r := range records {
		spaceID := int64(0)
		if r.Booking.SpaceID != nil {
			spaceID = *r.Booking.SpaceID
		}
		logger.Warn("DirectoryCache:MalformedBookingRecord",
			"date", date,
			"bookingID", r.Booking.ID,
			"spaceID", spaceID,
			"reason", r.Reason,
		)
	}
	return nil
}

// JSONPutter stores a JSON document under key.
type JSONPutter interface {
	PutJSON(ctx context.Context, key string, v any) error
}

// ObjectReporter uploads each batch as one JSON object
// under <prefix>/<date>/<id>.json.
type ObjectReporter struct {
	store  JSONPutter
	prefix string
	now    func() time.Time
}

type malformedReport struct {
	ID         string                    `json:"id"`
	Date       string                    `json:"date"`
	ReportedAt time.Time                 `json:"reported_at"`
	Count      int                       `json:"count"`
	Records    []entity.MalformedBooking `json:"records"`
}

func NewObjectReporter(store JSONPutter, prefix string) *ObjectReporter {
	p := slug.Make(prefix)
	if p == "" {
		p = "malformed-bookings"
	}
	return &ObjectReporter{store: store, prefix: p, now: time.Now}
}

func (r *ObjectReporter) Key(date, id string) string {
	return fmt.Sprintf("%s/%s/%s.json", r.prefix, slug.Make(date), id)
}

func (r *ObjectReporter) Report(ctx context.Context, date string, records []entity.MalformedBooking) error {
	if len(records) == 0 {
		return nil
	}
	report := malformedReport{
		ID:         utils.GenerateID(),
		Date:       date,
		ReportedAt: r.now().UTC(),
		Count:      len(records),
		Records:    records,
	}
	key := r.Key(date, report.ID)
	if err := r.store.PutJSON(ctx, key, report); err != nil {
		return err
	}
	logger.Info("ObjectReporter:Report:Uploaded", "date", date, "key", key, "count", len(records))
	return nil
}

// MultiReporter calls every reporter and joins their errors.
type MultiReporter []MalformedReporter

func (m MultiReporter) Report(ctx context.Context, date string, records []entity.MalformedBooking) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, date, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
