package school

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

const (
	badDateText  = "date must match the YYYY-MM-DD format"
	badTimeText  = "time must match the HH:MM format"
	multiOwnText = "at most one owner may be set"
)

// ownerOf folds up to three optional owner FKs into a tagged Owner,
// failing when more than one is set.
func ownerOf(teacherID, studentID, parentID *int) (Owner, error) {
	var owner Owner
	var set int
	if teacherID != nil {
		owner, set = TeacherOwner(*teacherID), set+1
	}
	if studentID != nil {
		owner, set = StudentOwner(*studentID), set+1
	}
	if parentID != nil {
		owner, set = ParentOwner(*parentID), set+1
	}
	if set > 1 {
		return Owner{}, core.NewValidationError(nil, core.FieldError{Field: "owner", Error: multiOwnText})
	}
	return owner, nil
}

func parseDateField(field, val string, flds *[]core.FieldError) core.Date {
	d, err := core.ParseDate(val)
	if err != nil {
		*flds = append(*flds, core.FieldError{Field: field, Error: badDateText})
	}
	return d
}

func parseDateFieldPtr(field string, val *string, flds *[]core.FieldError) *core.Date {
	if val == nil {
		return nil
	}
	d := parseDateField(field, *val, flds)
	return &d
}

func parseTimeField(field, val string, flds *[]core.FieldError) core.TimeOfDay {
	t, err := core.ParseTimeOfDay(val)
	if err != nil {
		*flds = append(*flds, core.FieldError{Field: field, Error: badTimeText})
	}
	return t
}

func parseTimeFieldPtr(field string, val *string, flds *[]core.FieldError) *core.TimeOfDay {
	if val == nil {
		return nil
	}
	t := parseTimeField(field, *val, flds)
	return &t
}

// partial-update helpers; a nil source leaves the destination unchanged

func setStr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setNullStr(dst *null.String, src *string) {
	if src != nil {
		*dst = null.StringFrom(*src)
	}
}

func setNullInt(dst *null.Int, src *int) {
	if src != nil {
		*dst = null.IntFrom(*src)
	}
}

func cleanPtr(s *string) {
	if s != nil {
		*s = core.CleanString(*s)
	}
}

func cleanPtrLower(s *string) {
	if s != nil {
		*s = core.CleanString(*s, true /* lower */)
	}
}
