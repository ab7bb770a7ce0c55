/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strings"
)

// ConnectionString holds the parsed fields of a DynamoDB connection string.
//
// The format is a semicolon-separated list of key=value pairs:
//
//	Region=us-east-1;AccessKey=AKIA...;SecretKey=...;Endpoint=http://localhost:8000
//
// Region is required. AccessKey and SecretKey are optional as a pair; when
// absent the default AWS credential chain is used. Endpoint overrides the
// service endpoint, typically to point at DynamoDB Local.
type ConnectionString struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// ParseConnectionString parses s into its fields.
func ParseConnectionString(s string) (*ConnectionString, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty connection string")
	}

	cs := &ConnectionString{}
	for _, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, fmt.Errorf("malformed connection string segment %q", segment)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "region":
			cs.Region = value
		case "accesskey":
			cs.AccessKey = value
		case "secretkey":
			cs.SecretKey = value
		case "endpoint":
			cs.Endpoint = value
		default:
			return nil, fmt.Errorf("unknown connection string key %q", key)
		}
	}

	if cs.Region == "" {
		return nil, fmt.Errorf("connection string missing Region")
	}
	if (cs.AccessKey == "") != (cs.SecretKey == "") {
		return nil, fmt.Errorf("AccessKey and SecretKey must be provided together")
	}
	return cs, nil
}
