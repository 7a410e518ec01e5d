// Copyright (c) 2025, Lakescan Authors.  All rights reserved.
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

package notebook

import (
	"regexp"
	"sort"
	"strings"
)

var magicPattern = regexp.MustCompile(`%(\w+)\b`)

// Cell magics that switch the cell language.
var languageMagics = map[string]struct{}{
	"python": {},
	"sql":    {},
	"scala":  {},
	"r":      {},
}

// Non-language magics worth surfacing in the inventory.
var otherMagics = map[string]struct{}{
	"fs":  {},
	"sh":  {},
	"md":  {},
	"run": {},
	"pip": {},
}

// detectMagics scans notebook source for %-prefixed magic commands and
// splits them into embedded languages and other magics. Results are
// deduplicated and sorted so report output is stable across runs.
func detectMagics(content string) (languages, others []string) {
	langSet := make(map[string]struct{})
	otherSet := make(map[string]struct{})

	for _, line := range strings.Split(strings.ToLower(content), "\n") {
		for _, match := range magicPattern.FindAllStringSubmatch(line, -1) {
			name := match[1]
			if _, ok := languageMagics[name]; ok {
				langSet[name] = struct{}{}
			} else if _, ok := otherMagics[name]; ok {
				otherSet[name] = struct{}{}
			}
		}
	}

	return sortedKeys(langSet), sortedKeys(otherSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
