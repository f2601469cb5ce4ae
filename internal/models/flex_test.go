package models

import (
	"encoding/json"
	"testing"
)

func TestCreateRequestInput_CoercesScalars(t *testing.T) {
	body := `{"patient_name":"Ali","national_id":1029384756,"age":"34","bags_needed":2.0,` +
		`"phone_number":555,"user_id":7,"medical_report_url":null}`

	var in CreateRequestInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	req := in.ToModel()

	if req.NationalID != "1029384756" || req.PhoneNumber != "555" {
		t.Errorf("numeric text fields: got %q, %q", req.NationalID, req.PhoneNumber)
	}
	if req.Age != 34 || req.BagsNeeded != 2 {
		t.Errorf("int fields: got age=%d bags=%d", req.Age, req.BagsNeeded)
	}
	if req.UserID == nil || *req.UserID != "7" {
		t.Errorf("user_id: got %v", req.UserID)
	}
	if req.MedicalReportURL != nil {
		t.Errorf("medical_report_url: expected nil, got %q", *req.MedicalReportURL)
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{`34`, 34, false},
		{`"34"`, 34, false},
		{`" 34 "`, 34, false},
		{`""`, 0, false},
		{`3.9`, 3, false},
		{`"abc"`, 0, true},
		{`[1]`, 0, true},
	}

	for _, tt := range tests {
		var got FlexInt
		err := json.Unmarshal([]byte(tt.in), &got)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexString
		wantErr bool
	}{
		{`"user-7"`, "user-7", false},
		{`7`, "7", false},
		{`true`, "true", false},
		{`{"a":1}`, "", true},
	}

	for _, tt := range tests {
		var got FlexString
		err := json.Unmarshal([]byte(tt.in), &got)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.in, got, tt.want)
		}
	}
}
