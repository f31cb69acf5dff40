/*
 * Copyright 2026 Splunkscope Authors.
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
 */

package splunkd

import "errors"

var (
	// ErrConnect occurs when the instance is unreachable. The whole
	// instance report is marked failed.
	ErrConnect = errors.New("splunkd unreachable")

	// ErrAuth occurs when the management API rejects the credentials.
	ErrAuth = errors.New("splunkd authentication failed")

	// ErrFetch occurs when one fact-category call fails without
	// invalidating the session.
	ErrFetch = errors.New("splunkd fetch failed")

	// ErrParse occurs on an unexpected response shape. Callers treat
	// it the same as ErrFetch for the affected section.
	ErrParse = errors.New("splunkd response parse failed")
)
