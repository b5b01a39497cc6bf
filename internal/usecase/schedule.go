package usecase

import (
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
)

// Fixed follow-up intervals, in days from the day the status flag transitions
// to true. These are product policy, not configuration.
const (
	RequireLetterFollowUpDays   = 90
	CatalogueFirstFollowUpDays  = 7
	CatalogueSecondFollowUpDays = 14
	QuotationFollowUpDays       = 15
)

// timeNow is swapped out by tests that pin the clock.
var timeNow = time.Now

// DateOnly strips the clock so follow-up dates compare by calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a stored follow-up date falls on the given day.
func SameDay(stored *time.Time, day time.Time) bool {
	if stored == nil {
		return false
	}
	y1, m1, d1 := stored.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func daysFrom(day time.Time, days int) *time.Time {
	d := DateOnly(day).AddDate(0, 0, days)
	return &d
}

// ScheduleFollowUps derives the follow-up date(s) for a status that just
// transitioned false to true. Callers are responsible for only invoking it on
// a real transition; re-applying it would push dates forward.
func ScheduleFollowUps(lead *entity.Lead, kind entity.StatusKind, today time.Time) []entity.FollowUpCategory {
	switch kind {
	case entity.StatusRequireLetter:
		lead.RequireLetterFollowUpDate = daysFrom(today, RequireLetterFollowUpDays)
		return []entity.FollowUpCategory{entity.FollowUpRequireLetter}
	case entity.StatusEmailCatalogue:
		lead.CatalogueFirstFollowUpDate = daysFrom(today, CatalogueFirstFollowUpDays)
		lead.CatalogueSecondFollowUpDate = daysFrom(today, CatalogueSecondFollowUpDays)
		return []entity.FollowUpCategory{entity.FollowUpCatalogueFirst, entity.FollowUpCatalogueSecond}
	case entity.StatusQuotationSent:
		lead.QuotationFollowUpDate = daysFrom(today, QuotationFollowUpDays)
		return []entity.FollowUpCategory{entity.FollowUpQuotation}
	}
	// not_interested schedules nothing
	return nil
}

// AdvanceQuotationFollowUp moves the recurring quotation reminder to
// today+15. The other three categories fire once and keep their stale date.
func AdvanceQuotationFollowUp(lead *entity.Lead, today time.Time) {
	lead.QuotationFollowUpDate = daysFrom(today, QuotationFollowUpDays)
}

// flagFor maps each reminder category back to the status flag that owns it.
var flagFor = map[entity.FollowUpCategory]entity.StatusKind{
	entity.FollowUpRequireLetter:   entity.StatusRequireLetter,
	entity.FollowUpCatalogueFirst:  entity.StatusEmailCatalogue,
	entity.FollowUpCatalogueSecond: entity.StatusEmailCatalogue,
	entity.FollowUpQuotation:       entity.StatusQuotationSent,
}

// DueCategories lists the reminders due for a lead on the given day. The
// owning flag must still be true and the stored date must equal the day
// exactly.
func DueCategories(lead *entity.Lead, today time.Time) []entity.FollowUpCategory {
	var due []entity.FollowUpCategory
	for _, category := range []entity.FollowUpCategory{
		entity.FollowUpRequireLetter,
		entity.FollowUpCatalogueFirst,
		entity.FollowUpCatalogueSecond,
		entity.FollowUpQuotation,
	} {
		if lead.Flag(flagFor[category]) && SameDay(lead.FollowUpDate(category), today) {
			due = append(due, category)
		}
	}
	return due
}
