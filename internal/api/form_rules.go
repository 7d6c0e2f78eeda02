package api

import (
	"localgym/gym-admin/internal/forms"
)

// Per-entity validation pipelines. Field names match the form controls (and
// the stored documents); messages are the ones shown next to the fields.

func memberFormRules() forms.Pipeline {
	return forms.Pipeline{
		forms.NewField("first_name").Required("First name must be specified.").Alphanumeric("First name has non-alphanumeric characters."),
		forms.NewField("family_name").Required("Family name must be specified.").Alphanumeric("Family name has non-alphanumeric characters."),
		forms.NewField("date_of_birth").Optional().ISODate("Invalid date of birth"),
		forms.NewField("m_address").Required("Address must be specified."),
		forms.NewField("m_number").Length(10, 12, "Phone number must be specified").Numeric("Should be Number."),
		forms.NewField("date_of_reg").Optional().ISODate("Invalid date"),
		forms.NewField("trainer").Required("Trainer must be specified."),
		forms.NewField("plan").Optional(),
		forms.NewField("plan_end_on").Optional().ISODate("Invalid date"),
		forms.NewField("type").Optional(),
	}
}

func trainerFormRules() forms.Pipeline {
	return forms.Pipeline{
		forms.NewField("first_name").Required("First name must be specified.").Alphanumeric("First name has non-alphanumeric characters."),
		forms.NewField("family_name").Required("Family name must be specified.").Alphanumeric("Family name has non-alphanumeric characters."),
		forms.NewField("date_of_birth").Optional().ISODate("Invalid date of birth"),
		forms.NewField("m_address").Required("Address must be specified."),
		forms.NewField("m_number").Length(10, 12, "Phone number must be specified").Numeric("Should be Number."),
		forms.NewField("date_of_reg").Optional().ISODate("Invalid date"),
		forms.NewField("salary").Required("Salary must be specified.").Integer("Salary must be a number."),
	}
}

func planFormRules() forms.Pipeline {
	return forms.Pipeline{
		forms.NewField("planName").Required("Plan must be specified"),
		forms.NewField("price").Required("Price must be specified").Integer("Price must be a number"),
		forms.NewField("discription").Required("Description must be specified"),
		forms.NewField("status").Required("Status must be specified"),
	}
}

func typeFormRules() forms.Pipeline {
	return forms.Pipeline{
		forms.NewField("name").Required("Type name required").Length(3, 100, "Type name must be between 3 and 100 characters"),
	}
}
