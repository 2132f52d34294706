package rest

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskListSchemaURL = "https://todo.local/schemas/task-list.json"

const taskListSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": ["integer", "string"]},
      "title": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledTaskList = jsonschema.MustCompileString(taskListSchemaURL, taskListSchema)

// validateTaskList checks a GET /tasks body before it is decoded.
func validateTaskList(body []byte) error {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode task list: %w", err)
	}
	if err := compiledTaskList.Validate(doc); err != nil {
		return fmt.Errorf("invalid task list: %s", schemaErrorMessage(err))
	}
	return nil
}

func schemaErrorMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	if len(msgs) == 0 {
		return ve.Message
	}
	return strings.Join(msgs, "; ")
}

func collectSchemaErrors(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
