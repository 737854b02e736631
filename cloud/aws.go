// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/ec2rolecreds"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"os"
	"path/filepath"
)

const DefaultAWSProfile = "relief"

// getAWSSession prefers the shared credentials file and falls back to the
// instance role.
func getAWSSession(region, profile string) (*session.Session, error) {
	if profile == "" {
		profile = DefaultAWSProfile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".aws", "credentials")

	var creds *credentials.Credentials
	if _, statErr := os.Stat(path); statErr == nil {
		creds = credentials.NewSharedCredentials(path, profile)
	} else {
		metadata := ec2metadata.New(session.Must(session.NewSession(aws.NewConfig())))
		creds = credentials.NewCredentials(&ec2rolecreds.EC2RoleProvider{Client: metadata})
	}

	return session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: creds,
	})
}
