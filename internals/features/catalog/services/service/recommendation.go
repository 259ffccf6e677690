package service

import (
	"strings"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/catalog/services/model"
)

// ResolveService picks the service a new session belongs to.
// Resolution order: explicit id -> student default -> unique tag match
// among active services linked to the student's tags -> legacy
// free-text name match -> none.
func ResolveService(
	explicitID *uuid.UUID,
	studentDefaultID *uuid.UUID,
	studentTags []string,
	active []model.ServiceModel,
	legacyName *string,
) *model.ServiceModel {
	byID := func(id uuid.UUID) *model.ServiceModel {
		for i := range active {
			if active[i].ServiceID == id {
				return &active[i]
			}
		}
		return nil
	}

	if explicitID != nil {
		return byID(*explicitID)
	}
	if studentDefaultID != nil {
		if svc := byID(*studentDefaultID); svc != nil {
			return svc
		}
	}

	// tag match counts: only an unambiguous single hit is used
	tagSet := make(map[string]struct{}, len(studentTags))
	for _, t := range studentTags {
		tagSet[t] = struct{}{}
	}
	var tagHit *model.ServiceModel
	hits := 0
	for i := range active {
		lt := active[i].ServiceLinkedStudentTag
		if lt == nil || *lt == "" {
			continue
		}
		if _, found := tagSet[*lt]; found {
			tagHit = &active[i]
			hits++
		}
	}
	if hits == 1 {
		return tagHit
	}

	if legacyName != nil && *legacyName != "" {
		for i := range active {
			if strings.EqualFold(active[i].ServiceName, *legacyName) {
				return &active[i]
			}
		}
	}
	return nil
}

// ResolveTemplate picks the report template for a resolved service.
// Explicit id (validated against the service) -> by system type, where
// ONGOING applies when the student already has a prior session for the
// service and INTAKE otherwise -> any active template as last resort.
func ResolveTemplate(
	explicitID *uuid.UUID,
	templates []model.ReportTemplateModel,
	hasPriorSession bool,
) *model.ReportTemplateModel {
	if explicitID != nil {
		for i := range templates {
			if templates[i].TemplateID == *explicitID && templates[i].TemplateIsActive {
				return &templates[i]
			}
		}
		return nil
	}

	wantType := model.TemplateTypeIntake
	if hasPriorSession {
		wantType = model.TemplateTypeOngoing
	}
	for i := range templates {
		if templates[i].TemplateIsActive && templates[i].TemplateSystemType == wantType {
			return &templates[i]
		}
	}
	for i := range templates {
		if templates[i].TemplateIsActive {
			return &templates[i]
		}
	}
	return nil
}
