package assistant

import "github.com/tidwall/gjson"

// AnalysisView is the display-ready projection of the most recent analysis
// metadata in the active transcript. Derived, never persisted: it is rebuilt
// from scratch whenever the underlying message set changes.
type AnalysisView struct {
	Code              string
	Explanation       string
	VisualizationHTML string
	Suggestions       []string
	Warnings          []string
}

// IsZero reports whether the view carries no analysis output.
func (v AnalysisView) IsZero() bool {
	return v.Code == "" && v.Explanation == "" && v.VisualizationHTML == "" &&
		len(v.Suggestions) == 0 && len(v.Warnings) == 0
}

// Project scans the transcript from newest to oldest and maps the first
// assistant message carrying metadata onto an AnalysisView. Fields absent
// from the metadata project as zero values; if no message qualifies the
// empty view is returned. Pure and idempotent.
func Project(messages []Message) AnalysisView {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.IsUser || !m.HasMetadata() {
			continue
		}

		md := []byte(m.Metadata)
		return AnalysisView{
			Code:              gjson.GetBytes(md, "corrected_code").String(),
			Explanation:       gjson.GetBytes(md, "explanation").String(),
			VisualizationHTML: gjson.GetBytes(md, "visualization_html").String(),
			Suggestions:       stringSlice(gjson.GetBytes(md, "suggestions")),
			Warnings:          stringSlice(gjson.GetBytes(md, "warnings")),
		}
	}
	return AnalysisView{}
}

func stringSlice(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	var out []string
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
