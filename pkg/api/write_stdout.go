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

type Write struct {
	Type   string       `yaml:"type" json:"type" enum:"WriteTypeEnum" doc:"(enum) destination of the report:"`
	Stdout *WriteStdout `yaml:"stdout,omitempty" json:"stdout,omitempty" doc:"parameters for the stdout writer"`
	File   *WriteFile   `yaml:"file,omitempty" json:"file,omitempty" doc:"parameters for the file writer"`
	S3     *WriteS3     `yaml:"s3,omitempty" json:"s3,omitempty" doc:"parameters for the s3 writer"`
}

type WriteTypeEnum struct {
	Stdout string `yaml:"stdout" doc:"print rows to standard output"`
	File   string `yaml:"file" doc:"write rows to a local csv file (default)"`
	S3     string `yaml:"s3" doc:"upload rows as a csv object"`
}

func WriteTypeName(t string) string {
	return GetEnumName(WriteTypeEnum{}, t)
}

type WriteStdout struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty" doc:"the format of each line: csv (default) or json"`
}
