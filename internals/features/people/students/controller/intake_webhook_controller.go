package controller

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tuttiud_backend/internals/configs"
	orgModel "tuttiud_backend/internals/features/organizations/model"
	dto "tuttiud_backend/internals/features/people/students/dto"
	model "tuttiud_backend/internals/features/people/students/model"
	helper "tuttiud_backend/internals/helpers"
	"tuttiud_backend/internals/helpers/coerce"
	"tuttiud_backend/internals/helpers/metadata"
)

// IntakeWebhookController receives external intake-form submissions
// (public route, shared-secret header) and creates students pending
// approval. The raw responses are kept verbatim; field mapping comes
// from the org's intake_field_map setting.
type IntakeWebhookController struct {
	DB *gorm.DB
}

func NewIntakeWebhookController(db *gorm.DB) *IntakeWebhookController {
	return &IntakeWebhookController{DB: db}
}

type intakePayload struct {
	OrgID     uuid.UUID              `json:"org_id"`
	Responses map[string]interface{} `json:"responses"`
}

// POST /api/public/intake-webhook
func (h *IntakeWebhookController) Receive(c *fiber.Ctx) error {
	secret := configs.IntakeWebhookSecret
	if secret == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "webhook_disabled")
	}
	provided := c.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid_webhook_secret")
	}

	var payload intakePayload
	if err := c.BodyParser(&payload); err != nil || payload.OrgID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_body")
	}
	if len(payload.Responses) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_responses")
	}

	fieldMap := h.loadFieldMap(payload.OrgID)

	name := stringField(payload.Responses, fieldMap, "name")
	if name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_name")
	}
	nid := coerce.NationalID(stringField(payload.Responses, fieldMap, "national_id"))
	if !nid.Provided {
		return helper.JsonError(c, fiber.StatusBadRequest, "missing_national_id")
	}
	if !nid.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid_national_id")
	}

	var phone *string
	if raw := stringField(payload.Responses, fieldMap, "phone"); raw != "" {
		p := coerce.Phone(raw)
		if p.Valid {
			phone = p.Value
		}
		// an unparseable phone stays in intake_responses for the
		// approving admin to fix, it does not block the intake
	}

	var tags []string
	if raw := stringField(payload.Responses, fieldMap, "tag"); raw != "" {
		tags = coerce.Tags([]string{raw})
	}

	student := model.StudentModel{
		StudentOrgID:               payload.OrgID,
		StudentName:                name,
		StudentNationalID:          *nid.Value,
		StudentPhone:               phone,
		StudentTags:                pq.StringArray(tags),
		StudentIntakeResponses:     metadata.Encode(payload.Responses),
		StudentNeedsIntakeApproval: true,
		StudentIsActive:            true,
	}
	if err := h.DB.Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "national_id_exists")
		}
		return helper.JsonDBError(c, err)
	}

	log.Printf("[INFO] intake webhook created student %s for org %s", student.StudentID, payload.OrgID)
	return helper.JsonCreated(c, "intake received", dto.FromModel(&student))
}

// loadFieldMap reads the org's intake_field_map setting; a missing or
// broken setting falls back to identity mapping.
func (h *IntakeWebhookController) loadFieldMap(orgID uuid.UUID) map[string]string {
	var setting orgModel.OrgSettingModel
	err := h.DB.
		Where("org_setting_org_id = ? AND org_setting_key = ?", orgID, orgModel.SettingIntakeFieldMap).
		First(&setting).Error
	if err != nil {
		return map[string]string{}
	}
	decoded := metadata.Decode(setting.OrgSettingValue)
	out := make(map[string]string, len(decoded))
	for k, v := range decoded {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// stringField resolves a logical field ("name") to the mapped response
// key and returns its string value.
func stringField(responses map[string]interface{}, fieldMap map[string]string, logical string) string {
	key := logical
	if mapped, found := fieldMap[logical]; found && mapped != "" {
		key = mapped
	}
	v, _ := responses[key].(string)
	return v
}
