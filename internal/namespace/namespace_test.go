// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternMatches(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		pattern   string
		namespace string
		expected  bool
	}{
		"exact match": {
			pattern:   "app:router:request",
			namespace: "app:router:request",
			expected:  true,
		},
		"exact pattern does not prefix match": {
			pattern:   "app:router",
			namespace: "app:router:request",
			expected:  false,
		},
		"wildcard prefix match": {
			pattern:   "app:*",
			namespace: "app:router:response",
			expected:  true,
		},
		"wildcard matches wildcard namespace": {
			pattern:   "app:*",
			namespace: "app:always-on*",
			expected:  true,
		},
		"wildcard with different prefix": {
			pattern:   "off:*",
			namespace: "app:router:response",
			expected:  false,
		},
		"lone wildcard matches everything": {
			pattern:   "*",
			namespace: "off:by:default",
			expected:  true,
		},
		"wildcard namespace matched verbatim": {
			pattern:   "app:always-on*",
			namespace: "app:always-on*",
			expected:  true,
		},
	}

	for testName, test := range testCases {
		testName, test := testName, test
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, NewPattern(test.pattern).Matches(test.namespace))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		raw              string
		expectedIncludes []string
		expectedExcludes []string
		expectedString   string
	}{
		"empty spec": {
			raw:            "",
			expectedString: "",
		},
		"inclusions and exclusions": {
			raw:              "app:*,-app:router:response",
			expectedIncludes: []string{"app:*"},
			expectedExcludes: []string{"app:router:response"},
			expectedString:   "app:*,-app:router:response",
		},
		"stray commas and spaces are ignored": {
			raw:              ",, app:router:request ,,off:by:default,",
			expectedIncludes: []string{"app:router:request", "off:by:default"},
			expectedString:   "app:router:request,off:by:default",
		},
		"lone dash is ignored": {
			raw:              "app:*,-,",
			expectedIncludes: []string{"app:*"},
			expectedString:   "app:*",
		},
		"exclusions are moved after inclusions": {
			raw:              "-off:*,app:*",
			expectedIncludes: []string{"app:*"},
			expectedExcludes: []string{"off:*"},
			expectedString:   "app:*,-off:*",
		},
	}

	for testName, test := range testCases {
		testName, test := testName, test
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			spec := Parse(test.raw)
			assert.Equal(t, test.expectedIncludes, patternsToStrings(spec.includes))
			assert.Equal(t, test.expectedExcludes, patternsToStrings(spec.excludes))
			assert.Equal(t, test.expectedString, spec.String())
		})
	}
}

func TestSpecEnabled(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		spec      string
		namespace string
		expected  bool
	}{
		"included namespace": {
			spec:      "app:*",
			namespace: "app:router:request",
			expected:  true,
		},
		"not included namespace": {
			spec:      "app:*",
			namespace: "off:by:default",
			expected:  false,
		},
		"exclusion wins over inclusion": {
			spec:      "app:*,-app:router:response",
			namespace: "app:router:response",
			expected:  false,
		},
		"inclusion then exclusion of the same pattern": {
			spec:      "app:router:request,-app:router:request",
			namespace: "app:router:request",
			expected:  false,
		},
		"always-on with empty spec": {
			spec:      "",
			namespace: "app:always-on*",
			expected:  true,
		},
		"always-on with unrelated spec": {
			spec:      "off:by:default",
			namespace: "app:always-on*",
			expected:  true,
		},
		"always-on explicitly excluded": {
			spec:      "-app:always-on*",
			namespace: "app:always-on*",
			expected:  false,
		},
		"always-on excluded by wildcard": {
			spec:      "app:*,-app:*",
			namespace: "app:always-on*",
			expected:  false,
		},
	}

	for testName, test := range testCases {
		testName, test := testName, test
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, Parse(test.spec).Enabled(test.namespace))
		})
	}
}

func TestHasInclusion(t *testing.T) {
	t.Parallel()

	spec := Parse("app:*,-off:*")
	assert.True(t, spec.HasInclusion(NewPattern("app:*")))
	assert.False(t, spec.HasInclusion(NewPattern("off:*")))
	assert.False(t, spec.HasInclusion(NewPattern("app:router:request")))
}

func patternsToStrings(patterns []Pattern) []string {
	if len(patterns) == 0 {
		return nil
	}

	values := make([]string, 0, len(patterns))
	for _, p := range patterns {
		values = append(values, p.String())
	}
	return values
}
