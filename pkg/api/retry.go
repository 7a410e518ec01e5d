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

package api

import (
	"net/http"
	"time"

	"github.com/lakescan/lakescan/pkg/defaults"
)

// BackoffStrategy selects how the wait between retry attempts grows.
type BackoffStrategy string

const (
	// BackoffFixed waits the same duration between every attempt.
	BackoffFixed BackoffStrategy = "fixed"
	// BackoffExponential doubles the wait after each attempt, capped at
	// the policy's MaxWait.
	BackoffExponential BackoffStrategy = "exponential"
)

// IsUnknown reports whether the strategy is not one of the supported values.
func (s BackoffStrategy) IsUnknown() bool {
	switch s {
	case BackoffFixed, BackoffExponential:
		return false
	default:
		return true
	}
}

// RetryPolicy bounds the retry behavior of the API client. Zero values are
// replaced with defaults, so callers can set only the fields they care about.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts per call, including
	// the first one.
	MaxAttempts int

	// Strategy selects fixed or exponential backoff.
	Strategy BackoffStrategy

	// Wait is the backoff for the fixed strategy and the initial backoff
	// for the exponential one.
	Wait time.Duration

	// MaxWait caps the exponential backoff.
	MaxWait time.Duration
}

// DefaultRetryPolicy returns the retry policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaults.RetryMaxAttempts,
		Strategy:    BackoffFixed,
		Wait:        defaults.RetryWait,
		MaxWait:     defaults.RetryMaxWait,
	}
}

// normalized fills in zero or invalid fields with defaults.
func (p RetryPolicy) normalized() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.Strategy.IsUnknown() {
		p.Strategy = def.Strategy
	}
	if p.Wait <= 0 {
		p.Wait = def.Wait
	}
	if p.MaxWait <= 0 {
		p.MaxWait = def.MaxWait
	}
	return p
}

// backoff returns the wait before the next attempt. The attempt argument is
// the 1-based number of the attempt that just failed.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	if p.Strategy != BackoffExponential {
		return p.Wait
	}
	wait := p.Wait
	for i := 1; i < attempt; i++ {
		wait *= 2
		if wait >= p.MaxWait {
			return p.MaxWait
		}
	}
	return wait
}

// retryable reports whether an HTTP status warrants another attempt.
// Auth and client errors are deliberately excluded: retrying a 401 or a
// malformed request cannot succeed and only burns the rate budget.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
