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

package api

type WriteS3 struct {
	Endpoint        string   `yaml:"endpoint" json:"endpoint" doc:"address of s3 server"`
	AccessKeyID     string   `yaml:"accessKeyId" json:"accessKeyId" doc:"username to connect to server"`
	SecretAccessKey string   `yaml:"secretAccessKey" json:"secretAccessKey" doc:"password to connect to server"`
	Bucket          string   `yaml:"bucket" json:"bucket" doc:"bucket into which to store the report"`
	Object          string   `yaml:"object,omitempty" json:"object,omitempty" doc:"object name of the report (default: bogon_as_paths.csv)"`
	Secure          bool     `yaml:"secure,omitempty" json:"secure,omitempty" doc:"connect with https"`
	WriteTimeout    Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty" doc:"timeout of the upload (default: 60s)"`
}
