package scope

import "strings"

const (
	TemplateStandardJanitorial = "STANDARD_JANITORIAL"
	TemplateDayPorterLight     = "DAY_PORTER_LIGHT"
)

const defaultAreaType = "*"

// Service templates map an area type to the tasks normally performed there.
var serviceTemplates = map[string]map[string][]AreaTask{
	TemplateStandardJanitorial: {
		"OFFICE_SPACE": {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "VACUUM", FrequencyCode: FrequencyDaily},
			{TaskCode: "DUST_SURFACES", FrequencyCode: FrequencyWeekly},
		},
		"CONFERENCE": {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "VACUUM", FrequencyCode: FrequencyThreeWeek},
			{TaskCode: "WIPE_TABLES", FrequencyCode: FrequencyDaily},
		},
		"RESTROOM": {
			{TaskCode: "CLEAN_FIXTURES", FrequencyCode: FrequencyDaily},
			{TaskCode: "RESTOCK_DISPENSERS", FrequencyCode: FrequencyDaily},
			{TaskCode: "MOP", FrequencyCode: FrequencyDaily},
		},
		"LOCKER_ROOM": {
			{TaskCode: "CLEAN_FIXTURES", FrequencyCode: FrequencyDaily},
			{TaskCode: "MOP", FrequencyCode: FrequencyDaily},
		},
		"BREAKROOM": {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "WIPE_TABLES", FrequencyCode: FrequencyDaily},
			{TaskCode: "MOP", FrequencyCode: FrequencyDaily},
		},
		"KITCHEN": {
			{TaskCode: "DEGREASE", FrequencyCode: FrequencyDaily},
			{TaskCode: "MOP", FrequencyCode: FrequencyDaily},
		},
		"WAREHOUSE": {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "SWEEP", FrequencyCode: FrequencyWeekly},
		},
		"STORAGE": {
			{TaskCode: "SWEEP", FrequencyCode: FrequencyBiweekly},
		},
		defaultAreaType: {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "MOP", FrequencyCode: FrequencyDaily},
			{TaskCode: "DUST_SURFACES", FrequencyCode: FrequencyWeekly},
		},
	},
	TemplateDayPorterLight: {
		"RESTROOM": {
			{TaskCode: "RESTOCK_DISPENSERS", FrequencyCode: FrequencyDaily},
			{TaskCode: "SPOT_CLEAN", FrequencyCode: FrequencyDaily},
		},
		defaultAreaType: {
			{TaskCode: "EMPTY_TRASH", FrequencyCode: FrequencyDaily},
			{TaskCode: "SPOT_CLEAN", FrequencyCode: FrequencyThreeWeek},
		},
	},
}

// ApplyServiceTemplate returns copies of areas with the template's tasks
// attached. Areas that already have tasks keep them.
func ApplyServiceTemplate(areas []Area, template string) ([]Area, error) {
	tmpl, ok := serviceTemplates[strings.ToUpper(strings.TrimSpace(template))]
	if !ok {
		return nil, NewCalculationError(ErrCodeUnknownTemplate, "service_template",
			"unknown service template %q", template)
	}

	out := make([]Area, len(areas))
	for i, a := range areas {
		out[i] = a
		if len(a.Tasks) > 0 {
			continue
		}
		tasks, ok := tmpl[a.AreaType]
		if !ok {
			tasks = tmpl[defaultAreaType]
		}
		out[i].Tasks = append([]AreaTask(nil), tasks...)
	}
	return out, nil
}
