package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the common defects in model-generated JSON (single quotes,
// trailing commas, unclosed brackets, markdown fences) before decoding.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// DecodeLenient unmarshals collaborator output into target, escalating from
// strict JSON, to repaired JSON, to HJSON. Collaborator payloads are advisory
// inputs, so leniency here beats discarding a whole response over a stray
// comment or quote style.
func DecodeLenient(payload string, target interface{}) error {
	if err := json.Unmarshal([]byte(payload), target); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(payload); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	var loose map[string]interface{}
	if err := hjson.Unmarshal([]byte(payload), &loose); err != nil {
		return fmt.Errorf("JSON_STRUCTURAL_ERROR: payload is not decodable: %v", err)
	}
	normalized, err := json.Marshal(loose)
	if err != nil {
		return fmt.Errorf("JSON_STRUCTURAL_ERROR: %v", err)
	}
	if err := json.Unmarshal(normalized, target); err != nil {
		return fmt.Errorf("JSON_SCHEMA_VIOLATION: %v", err)
	}
	return nil
}
