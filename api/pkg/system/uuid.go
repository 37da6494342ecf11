package system

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	SkillPrefix              = "skl_"
	SkillAssociationPrefix   = "ska_"
	SkillExecutionPrefix     = "skx_"
	IntegrationPrefix        = "int_"
	ChatbotIntegrationPrefix = "cbi_"
	RequestPrefix            = "req_"
)

func newID() string {
	return strings.ToLower(ulid.Make().String())
}

func GenerateSkillID() string {
	return fmt.Sprintf("%s%s", SkillPrefix, newID())
}

func GenerateSkillAssociationID() string {
	return fmt.Sprintf("%s%s", SkillAssociationPrefix, newID())
}

func GenerateSkillExecutionID() string {
	return fmt.Sprintf("%s%s", SkillExecutionPrefix, newID())
}

func GenerateIntegrationID() string {
	return fmt.Sprintf("%s%s", IntegrationPrefix, newID())
}

func GenerateChatbotIntegrationID() string {
	return fmt.Sprintf("%s%s", ChatbotIntegrationPrefix, newID())
}

func GenerateRequestID() string {
	return fmt.Sprintf("%s%s", RequestPrefix, newID())
}
