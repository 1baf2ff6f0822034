package types

import "encoding/json"

// Collection is a row of the host's collection registry. Hidden collections
// stay out of the navigation but remain editable through the record UI.
type Collection struct {
	Name      string `json:"collection"`
	Hidden    bool   `json:"hidden"`
	Singleton bool   `json:"singleton"`
}

// Field is a row of the host's field registry describing how one column is
// rendered. Options is interface-specific JSON.
type Field struct {
	Collection string          `json:"collection"`
	Field      string          `json:"field"`
	Interface  string          `json:"interface"`
	Sort       int             `json:"sort"`
	Options    json.RawMessage `json:"options,omitempty"`
}

// Choice is one entry of a select-dropdown.
type Choice struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// DropdownOptions configures a select-dropdown field.
type DropdownOptions struct {
	Choices []Choice `json:"choices"`
}

// CodeOptions configures an input-code field.
type CodeOptions struct {
	Language string `json:"language"`
}

// TemplateFields returns the two field definitions registered for the
// template table. The filename dropdown offers one choice per seed file.
func TemplateFields(seedFiles []string) ([]Field, error) {
	choices := make([]Choice, 0, len(seedFiles))
	for _, f := range seedFiles {
		choices = append(choices, Choice{Text: f, Value: f})
	}
	dropdown, err := json.Marshal(DropdownOptions{Choices: choices})
	if err != nil {
		return nil, err
	}
	code, err := json.Marshal(CodeOptions{Language: "plaintext"})
	if err != nil {
		return nil, err
	}
	return []Field{
		{
			Collection: TemplatesTable,
			Field:      FieldTemplateFile,
			Interface:  InterfaceSelectDropdown,
			Sort:       1,
			Options:    dropdown,
		},
		{
			Collection: TemplatesTable,
			Field:      FieldTemplateBody,
			Interface:  InterfaceInputCode,
			Sort:       2,
			Options:    code,
		},
	}, nil
}
