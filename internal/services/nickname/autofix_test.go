package nickname

import (
	"reflect"
	"strings"
	"testing"

	"nickguard/internal/domain"
)

func TestAutoFix(t *testing.T) {
	v := MustNew(DefaultPolicy())
	tests := []struct {
		name     string
		in       string
		fixed    string
		applied  []domain.FixKind
		complete bool
	}{
		{
			name:     "lowercase name",
			in:       "Sulio | сулейман",
			fixed:    "Sulio | Сулейман",
			applied:  []domain.FixKind{domain.CapitalizedName},
			complete: true,
		},
		{
			name:     "bare pipe and lowercase",
			in:       "Sulio|сулейман",
			fixed:    "Sulio | Сулейман",
			applied:  []domain.FixKind{domain.NormalizedSeparator, domain.CapitalizedName},
			complete: true,
		},
		{
			name:     "only the leading letter is raised",
			in:       "Nick | анна-мария",
			fixed:    "Nick | Анна-мария",
			applied:  []domain.FixKind{domain.CapitalizedName},
			complete: true,
		},
		{
			name:     "lopsided spacing",
			in:       "Western  |Максим",
			fixed:    "Western | Максим",
			applied:  []domain.FixKind{domain.NormalizedSeparator},
			complete: true,
		},
		{
			name:     "latin name is not transliterated",
			in:       "Steam | Alex",
			fixed:    "Steam | Alex",
			applied:  []domain.FixKind{},
			complete: false,
		},
		{
			name:     "two separators are left alone",
			in:       "Western | Western | Максим",
			fixed:    "Western | Western | Максим",
			applied:  []domain.FixKind{},
			complete: false,
		},
		{
			name:     "two bare pipes are not normalized",
			in:       "Western|Western|Максим",
			fixed:    "Western|Western|Максим",
			applied:  []domain.FixKind{},
			complete: false,
		},
		{
			name:     "long name is truncated",
			in:       "Abc | Б" + strings.Repeat("а", 24),
			fixed:    "Abc | Б" + strings.Repeat("а", 19),
			applied:  []domain.FixKind{domain.TruncatedToMaxLength},
			complete: true,
		},
		{
			name:     "whole length is truncated from the name",
			in:       "ABCDEFGHIJKLMNOPQRST | Александрина",
			fixed:    "ABCDEFGHIJKLMNOPQRST | Александр",
			applied:  []domain.FixKind{domain.TruncatedToMaxLength},
			complete: true,
		},
		{
			name:     "short name is not fabricated",
			in:       "Nick | Ян",
			fixed:    "Nick | Ян",
			applied:  []domain.FixKind{},
			complete: false,
		},
		{
			name:     "valid input is untouched",
			in:       "Terminator | Владимир",
			fixed:    "Terminator | Владимир",
			applied:  []domain.FixKind{},
			complete: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.AutoFix(tt.in)
			if got.Original != tt.in {
				t.Errorf("Original = %q", got.Original)
			}
			if got.Fixed != tt.fixed {
				t.Errorf("Fixed = %q, want %q", got.Fixed, tt.fixed)
			}
			if !reflect.DeepEqual(got.Applied, tt.applied) {
				t.Errorf("Applied = %v, want %v", got.Applied, tt.applied)
			}
			if got.Complete != tt.complete {
				t.Errorf("Complete = %v, want %v", got.Complete, tt.complete)
			}
			if got.Complete != v.Validate(got.Fixed).Valid {
				t.Errorf("Complete disagrees with re-validation of %q", got.Fixed)
			}
		})
	}
}

func TestAutoFix_NeverDuplicatesHandle(t *testing.T) {
	v := MustNew(DefaultPolicy())
	got := v.AutoFix("Western | Western | Максим")
	if handle, name, ok := strings.Cut(got.Fixed, domain.Separator); ok && strings.EqualFold(handle, name) {
		t.Errorf("Fixed = %q duplicates the handle into the name", got.Fixed)
	}
	if got.Complete {
		t.Error("multiple separators must leave the fix incomplete")
	}
}

func TestAutoFix_FallbackName(t *testing.T) {
	p := DefaultPolicy()
	p.FallbackName = "Друг"
	v := MustNew(p)

	got := v.AutoFix("Nick | Ян")
	if got.Fixed != "Nick | Друг" || !got.Complete {
		t.Fatalf("AutoFix = %+v", got)
	}
	if want := []domain.FixKind{domain.PaddedToMinLength}; !reflect.DeepEqual(got.Applied, want) {
		t.Errorf("Applied = %v, want %v", got.Applied, want)
	}
}

// Any reported fix must leave the separator count resolved.
func TestAutoFix_RoundTrip(t *testing.T) {
	v := MustNew(DefaultPolicy())
	for _, c := range []string{
		"Sulio|сулейман",
		"Sulio  |  сулейман",
		"a|b|c",
		"Western | Western|Максим",
		"x |y",
		"Nick\t|\tиван",
		"Steam | alex",
		"Nick | " + strings.Repeat("ж", 30),
		"|",
		" | ",
		"",
	} {
		fix := v.AutoFix(c)
		if len(fix.Applied) == 0 {
			continue
		}
		if v.Validate(fix.Fixed).Has(domain.WrongSeparatorCount) {
			t.Errorf("AutoFix(%q) = %q applied %v but separator count is still wrong", c, fix.Fixed, fix.Applied)
		}
	}
}

func TestAutoFix_Deterministic(t *testing.T) {
	v := MustNew(DefaultPolicy())
	for _, c := range []string{"Sulio|сулейман", "Steam | Alex", "Abc | Б" + strings.Repeat("а", 30)} {
		if a, b := v.AutoFix(c), v.AutoFix(c); !reflect.DeepEqual(a, b) {
			t.Errorf("AutoFix(%q) differs between runs", c)
		}
	}
}
