package auth

import (
	"reflect"
	"testing"
)

func TestFromGroups(t *testing.T) {
	tests := []struct {
		name          string
		groups        []string
		isAdmin       bool
		unrestricted  bool
		allowsPSA     bool
		allowsCGC     bool
		wantCompanies []string
	}{
		{
			name:          "single company admin",
			groups:        []string{"PSA-Admins"},
			isAdmin:       true,
			allowsPSA:     true,
			wantCompanies: []string{"psa"},
		},
		{
			name:          "two companies",
			groups:        []string{"CGC-Admins", "PSA-Admins"},
			isAdmin:       true,
			allowsPSA:     true,
			allowsCGC:     true,
			wantCompanies: []string{"cgc", "psa"},
		},
		{
			name:         "super admin allows everything",
			groups:       []string{"Super-Admins"},
			isAdmin:      true,
			unrestricted: true,
			allowsPSA:    true,
			allowsCGC:    true,
		},
		{
			name:   "unknown groups ignored",
			groups: []string{"Everyone", "Finance"},
		},
		{
			name:          "unknown mixed with known",
			groups:        []string{"Everyone", "BGS-Admins"},
			isAdmin:       true,
			wantCompanies: []string{"bgs"},
		},
		{
			name:   "no groups",
			groups: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := FromGroups(tt.groups)
			if got := ctx.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
			if got := ctx.Unrestricted(); got != tt.unrestricted {
				t.Errorf("Unrestricted() = %v, want %v", got, tt.unrestricted)
			}
			if got := ctx.Allows("psa"); got != tt.allowsPSA {
				t.Errorf("Allows(psa) = %v, want %v", got, tt.allowsPSA)
			}
			if got := ctx.Allows("cgc"); got != tt.allowsCGC {
				t.Errorf("Allows(cgc) = %v, want %v", got, tt.allowsCGC)
			}
			if got := ctx.Companies(); !reflect.DeepEqual(got, tt.wantCompanies) {
				t.Errorf("Companies() = %v, want %v", got, tt.wantCompanies)
			}
		})
	}
}

func TestAllowsCaseInsensitiveCompany(t *testing.T) {
	ctx := FromGroups([]string{"SGC-Admins"})
	if !ctx.Allows("SGC") {
		t.Error("Allows(SGC) = false, want true")
	}
	if ctx.Allows("psa") {
		t.Error("Allows(psa) = true, want false")
	}
}

func TestParseGroupsHeader(t *testing.T) {
	tests := []struct {
		header string
		want   []string
	}{
		{"PSA-Admins", []string{"PSA-Admins"}},
		{"PSA-Admins, Super-Admins", []string{"PSA-Admins", "Super-Admins"}},
		{" PSA-Admins ,, BGS-Admins ", []string{"PSA-Admins", "BGS-Admins"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		if got := ParseGroupsHeader(tt.header); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseGroupsHeader(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
