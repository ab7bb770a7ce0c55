/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"
)

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ConnectionString
		wantErr bool
	}{
		{
			name:  "region only",
			input: "Region=us-east-1",
			want:  ConnectionString{Region: "us-east-1"},
		},
		{
			name:  "full form",
			input: "Region=us-west-2;AccessKey=AKIAEXAMPLE;SecretKey=secret;Endpoint=http://localhost:8000",
			want: ConnectionString{
				Region:    "us-west-2",
				AccessKey: "AKIAEXAMPLE",
				SecretKey: "secret",
				Endpoint:  "http://localhost:8000",
			},
		},
		{
			name:  "keys are case-insensitive",
			input: "region=eu-central-1;ENDPOINT=http://localhost:8000",
			want:  ConnectionString{Region: "eu-central-1", Endpoint: "http://localhost:8000"},
		},
		{
			name:  "whitespace and trailing semicolon tolerated",
			input: " Region = ap-southeast-2 ; ",
			want:  ConnectionString{Region: "ap-southeast-2"},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "malformed segment",
			input:   "Region=us-east-1;NotAPair",
			wantErr: true,
		},
		{
			name:    "unknown key",
			input:   "Region=us-east-1;TableName=Players",
			wantErr: true,
		},
		{
			name:    "missing region",
			input:   "AccessKey=AKIAEXAMPLE;SecretKey=secret",
			wantErr: true,
		},
		{
			name:    "access key without secret key",
			input:   "Region=us-east-1;AccessKey=AKIAEXAMPLE",
			wantErr: true,
		},
		{
			name:    "secret key without access key",
			input:   "Region=us-east-1;SecretKey=secret",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseConnectionString(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseConnectionString(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConnectionString(%q) failed: %v", tc.input, err)
			}
			if *got != tc.want {
				t.Errorf("ParseConnectionString(%q) = %+v, want %+v", tc.input, *got, tc.want)
			}
		})
	}
}
