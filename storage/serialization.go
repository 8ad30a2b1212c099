// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/triagit/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalReport serializes a SymptomReport to bytes.
func MarshalReport(report *core.SymptomReport) []byte {
	buf := make([]byte, core.SymptomReportMUS.Size(*report))
	core.SymptomReportMUS.Marshal(*report, buf)
	return buf
}

// UnmarshalReport deserializes a SymptomReport from bytes.
func UnmarshalReport(data []byte) (*core.SymptomReport, error) {
	report, _, err := core.SymptomReportMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// MarshalKeyword serializes a KeywordEntry to bytes.
func MarshalKeyword(entry *core.KeywordEntry) []byte {
	buf := make([]byte, core.KeywordEntryMUS.Size(*entry))
	core.KeywordEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalKeyword deserializes a KeywordEntry from bytes.
func UnmarshalKeyword(data []byte) (*core.KeywordEntry, error) {
	entry, _, err := core.KeywordEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
