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

// Package scanner orchestrates the section collectors into one workspace
// summary. Collectors run concurrently and fail independently: a section
// that cannot be collected is recorded as failed in the summary while the
// remaining sections complete. Authorization failures are the exception
// and abort the whole scan, though the partial summary is still written.
package scanner
