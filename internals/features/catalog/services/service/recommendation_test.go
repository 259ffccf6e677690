package service

import (
	"testing"

	"github.com/google/uuid"

	model "tuttiud_backend/internals/features/catalog/services/model"
)

func svc(name string, tag string) model.ServiceModel {
	s := model.ServiceModel{
		ServiceID:       uuid.New(),
		ServiceName:     name,
		ServiceIsActive: true,
	}
	if tag != "" {
		s.ServiceLinkedStudentTag = &tag
	}
	return s
}

func TestResolveServiceOrder(t *testing.T) {
	speech := svc("Speech Therapy", "speech")
	occupational := svc("Occupational Therapy", "ot")
	riding := svc("Therapeutic Riding", "")
	active := []model.ServiceModel{speech, occupational, riding}

	t.Run("explicit id wins over everything", func(t *testing.T) {
		got := ResolveService(&riding.ServiceID, &speech.ServiceID, []string{"speech"}, active, nil)
		if got == nil || got.ServiceID != riding.ServiceID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("unknown explicit id resolves to nothing", func(t *testing.T) {
		bogus := uuid.New()
		if got := ResolveService(&bogus, &speech.ServiceID, nil, active, nil); got != nil {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("student default", func(t *testing.T) {
		got := ResolveService(nil, &occupational.ServiceID, []string{"speech"}, active, nil)
		if got == nil || got.ServiceID != occupational.ServiceID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("unique tag match", func(t *testing.T) {
		got := ResolveService(nil, nil, []string{"speech", "unrelated"}, active, nil)
		if got == nil || got.ServiceID != speech.ServiceID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("ambiguous tags do not match", func(t *testing.T) {
		legacy := "Therapeutic Riding"
		got := ResolveService(nil, nil, []string{"speech", "ot"}, active, &legacy)
		if got == nil || got.ServiceID != riding.ServiceID {
			t.Fatalf("ambiguous tags should fall through to legacy name, got %v", got)
		}
	})

	t.Run("legacy name match is case-insensitive", func(t *testing.T) {
		legacy := "speech therapy"
		got := ResolveService(nil, nil, nil, active, &legacy)
		if got == nil || got.ServiceID != speech.ServiceID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("nothing resolvable", func(t *testing.T) {
		if got := ResolveService(nil, nil, nil, active, nil); got != nil {
			t.Fatalf("got %v", got)
		}
	})
}

func tpl(sysType string, active bool) model.ReportTemplateModel {
	return model.ReportTemplateModel{
		TemplateID:         uuid.New(),
		TemplateSystemType: sysType,
		TemplateIsActive:   active,
	}
}

func TestResolveTemplate(t *testing.T) {
	intake := tpl(model.TemplateTypeIntake, true)
	ongoing := tpl(model.TemplateTypeOngoing, true)
	summary := tpl(model.TemplateTypeSummary, true)
	templates := []model.ReportTemplateModel{summary, intake, ongoing}

	t.Run("explicit id", func(t *testing.T) {
		got := ResolveTemplate(&summary.TemplateID, templates, true)
		if got == nil || got.TemplateID != summary.TemplateID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("explicit id outside service", func(t *testing.T) {
		bogus := uuid.New()
		if got := ResolveTemplate(&bogus, templates, false); got != nil {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("first session gets intake", func(t *testing.T) {
		got := ResolveTemplate(nil, templates, false)
		if got == nil || got.TemplateID != intake.TemplateID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("prior session gets ongoing", func(t *testing.T) {
		got := ResolveTemplate(nil, templates, true)
		if got == nil || got.TemplateID != ongoing.TemplateID {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("falls back to any active template", func(t *testing.T) {
		only := []model.ReportTemplateModel{tpl(model.TemplateTypeCustom, true)}
		got := ResolveTemplate(nil, only, false)
		if got == nil {
			t.Fatal("expected the custom template")
		}
	})

	t.Run("inactive templates never resolve", func(t *testing.T) {
		only := []model.ReportTemplateModel{tpl(model.TemplateTypeIntake, false)}
		if got := ResolveTemplate(nil, only, false); got != nil {
			t.Fatalf("got %v", got)
		}
	})
}
