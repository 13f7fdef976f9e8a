package arbiter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"nickguard/internal/domain"
)

var (
	errNoObject       = errors.New("no json object in reply")
	errMissingApprove = errors.New("approve field missing")
	errApproveType    = errors.New("approve is not a boolean")
	errReasonsType    = errors.New("reasons is neither a list nor a string")
)

var codeFence = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

// defaultRejectReason fills in for a model that rejects without saying why.
const defaultRejectReason = "Никнейм не соответствует правилам сообщества"

type reply struct {
	Approve   json.RawMessage `json:"approve"`
	Reasons   json.RawMessage `json:"reasons"`
	FixedFull json.RawMessage `json:"fixed_full"`
	Notes     json.RawMessage `json:"notes_to_user"`
}

// extractObject strips code fences and returns the outermost {...} span.
func extractObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", errNoObject
	}
	return s[start : end+1], nil
}

// parseReply decodes the model's reply. approve must be a real boolean;
// the remaining fields are read leniently.
func parseReply(raw string) (domain.ArbiterDecision, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return domain.ArbiterDecision{}, err
	}
	var r reply
	if err := json.Unmarshal([]byte(obj), &r); err != nil {
		return domain.ArbiterDecision{}, fmt.Errorf("decode reply: %w", err)
	}
	if isNull(r.Approve) {
		return domain.ArbiterDecision{}, errMissingApprove
	}
	var d domain.ArbiterDecision
	if err := json.Unmarshal(r.Approve, &d.Approve); err != nil {
		return domain.ArbiterDecision{}, errApproveType
	}

	reasons, err := decodeReasons(r.Reasons)
	if err != nil {
		return domain.ArbiterDecision{}, err
	}
	for _, text := range reasons {
		if text = strings.TrimSpace(text); text != "" {
			d.Reasons = append(d.Reasons, domain.Reason{Kind: domain.PolicyViolation, Text: text})
		}
	}
	if !d.Approve && len(d.Reasons) == 0 {
		d.Reasons = []domain.Reason{{Kind: domain.PolicyViolation, Text: defaultRejectReason}}
	}
	d.SuggestedFull = optionalString(r.FixedFull)
	if strings.EqualFold(d.SuggestedFull, "null") {
		d.SuggestedFull = ""
	}
	d.UserNote = optionalString(r.Notes)
	return d, nil
}

func decodeReasons(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}, nil
	}
	return nil, errReasonsType
}

func optionalString(raw json.RawMessage) string {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
