// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/cenkalti/backoff"
	"path"
)

const uploadRetries = 4

type S3Filesystem struct {
	svc    *s3.S3
	bucket string
}

func NewS3Filesystem(session *session.Session, bucket string) (*S3Filesystem, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3: missing bucket")
	}
	return &S3Filesystem{svc: s3.New(session), bucket: bucket}, nil
}

// Upload puts data at key, retrying transient failures with exponential
// backoff.
func (s3Filesystem *S3Filesystem) Upload(key string, secondsCache int, data []byte) error {
	// Patch S3's limited vocabulary of default content types
	var contentType *string
	if mime, ok := contentTypes[path.Ext(key)]; ok {
		contentType = aws.String(mime)
	}

	upload := func() error {
		req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
			Bucket:       aws.String(s3Filesystem.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(data),
			CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
			ContentType:  contentType,
		})
		return req.Send()
	}

	return backoff.Retry(upload, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uploadRetries))
}
