/*
 * Copyright (C) 2024 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package write

import (
	"bytes"
	"context"
	"io"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/netobserv/bgp-bogons/pkg/api"
	"github.com/netobserv/bgp-bogons/pkg/xref"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultS3WriteTimeout = 60 * time.Second

type s3PutObject interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type writeS3 struct {
	s3Params     api.WriteS3
	s3Client     s3PutObject
	objectName   string
	writeTimeout time.Duration
}

// Write uploads the report as a single csv object
func (s *writeS3) Write(ctx context.Context, rows []xref.Row) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	b := bytes.NewReader(EncodeCSV(rows))
	uploadInfo, err := s.s3Client.PutObject(ctx, s.s3Params.Bucket, s.objectName, b, b.Size(), minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return errors.Wrapf(err, "uploading %s/%s", s.s3Params.Bucket, s.objectName)
	}
	log.Debugf("uploadInfo = %v", uploadInfo)
	rowsWritten.WithLabelValues("s3").Add(float64(len(rows)))
	log.Infof("uploaded %d rows to %s/%s", len(rows), s.s3Params.Bucket, s.objectName)
	return nil
}

// NewWriteS3 create a new writer to S3
func NewWriteS3(params api.WriteS3) (Writer, error) {
	log.Debugf("NewWriteS3, endpoint = %s, bucket = %s", params.Endpoint, params.Bucket)
	if params.Endpoint == "" || params.Bucket == "" {
		return nil, errors.New("s3 writer requires an endpoint and a bucket")
	}
	s3Client, err := minio.New(params.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(params.AccessKeyID, params.SecretAccessKey, ""),
		Secure: params.Secure,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating S3 client")
	}
	objectName := params.Object
	if objectName == "" {
		objectName = api.DefaultOutputFilename
	}

	return &writeS3{
		s3Params:     params,
		s3Client:     s3Client,
		objectName:   objectName,
		writeTimeout: api.DurationOr(params.WriteTimeout, defaultS3WriteTimeout),
	}, nil
}
