package audit

import (
	"fmt"
	"strconv"
)

// ElevationEvent records an attempt to establish the privilege-elevated
// service session. Failures are always logged; they indicate operator
// misconfiguration, not user error.
type ElevationEvent struct {
	ServiceUser  string
	CallerID     int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e ElevationEvent) MessageID() string {
	return "elevate"
}

func (e ElevationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("caller %d elevated to service account %s", e.CallerID, e.ServiceUser)
	}
	msg := fmt.Sprintf("caller %d failed to elevate to service account %s", e.CallerID, e.ServiceUser)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ElevationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityError
}

func (e ElevationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ElevationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"service": e.ServiceUser,
			"user":    strconv.FormatInt(e.CallerID, 10),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "elevate",
			"result":    result(e.Success),
		},
	}
	return sd
}

// FormUpdateEvent records a form definition write (new version appended).
type FormUpdateEvent struct {
	UserID       int64
	ClientIP     string
	FormID       string
	Success      bool
	ErrorMessage string
}

func (e FormUpdateEvent) MessageID() string {
	return "form-update"
}

func (e FormUpdateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d added a version to form %s", e.UserID, e.FormID)
	}
	msg := fmt.Sprintf("user %d tried to update form %s", e.UserID, e.FormID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e FormUpdateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e FormUpdateEvent) Facility() int {
	return FacilityAuth
}

func (e FormUpdateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"form": e.FormID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "form-update",
			"result":    result(e.Success),
		},
	}
}

// AssignmentEvent records a group assignment reconciliation.
type AssignmentEvent struct {
	UserID       int64
	ClientIP     string
	FormID       string
	Added        []int64
	Removed      []int64
	Success      bool
	ErrorMessage string
}

func (e AssignmentEvent) MessageID() string {
	return "assign"
}

func (e AssignmentEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d reconciled assignment of form %s (added %v, removed %v)",
			e.UserID, e.FormID, e.Added, e.Removed)
	}
	msg := fmt.Sprintf("user %d tried to reconcile assignment of form %s", e.UserID, e.FormID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AssignmentEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AssignmentEvent) Facility() int {
	return FacilityAuth
}

func (e AssignmentEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"form": e.FormID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "assign",
			"result":    result(e.Success),
		},
	}
}

// DataSubmitEvent records a form data submission against a host object.
type DataSubmitEvent struct {
	UserID       int64
	ClientIP     string
	FormID       string
	ObjType      string
	ObjID        int64
	Success      bool
	ErrorMessage string
}

func (e DataSubmitEvent) MessageID() string {
	return "submit"
}

func (e DataSubmitEvent) Message() string {
	target := fmt.Sprintf("%s %d", e.ObjType, e.ObjID)
	if e.Success {
		return fmt.Sprintf("user %d submitted data for form %s on %s", e.UserID, e.FormID, target)
	}
	msg := fmt.Sprintf("user %d tried to submit data for form %s on %s", e.UserID, e.FormID, target)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e DataSubmitEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e DataSubmitEvent) Facility() int {
	return FacilityAuth
}

func (e DataSubmitEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"form":     e.FormID,
			"obj_type": e.ObjType,
			"obj_id":   strconv.FormatInt(e.ObjID, 10),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "submit",
			"result":    result(e.Success),
		},
	}
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
