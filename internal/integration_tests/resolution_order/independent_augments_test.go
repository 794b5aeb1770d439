package integration_tests

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/yangkit/internal/testutil"
	"github.com/stretchr/testify/require"
)

var independentAugments = map[string]string{
	"base.yang": `module base {
  namespace "urn:example:base";
  prefix b;
  container root {
    container left;
    container right;
  }
}`,
	"left.yang": `module left {
  namespace "urn:example:left";
  prefix l;
  import base { prefix b; }
  augment "/b:root/b:left" {
    leaf l1 { type string; }
    leaf l2 { type string; }
  }
  augment "/b:root" {
    container from-left;
  }
}`,
	"right.yang": `module right {
  namespace "urn:example:right";
  prefix r;
  import base { prefix b; }
  import left { prefix l; }
  augment "/b:root/b:right" {
    leaf r1 { type string; }
  }
  augment "/b:root" {
    container from-right;
  }
  augment "/b:root/l:from-left" {
    leaf nested { type string; }
  }
}`,
}

// TestResolution_SchedulingOrderDoesNotMatter validates that permuting the
// order in which ready actions run leaves the effective model unchanged.
func TestResolution_SchedulingOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	want := testutil.Dump(testutil.MustBuild(t, independentAugments))

	for seed := int64(1); seed <= 16; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got := testutil.Dump(testutil.MustBuild(t, independentAugments, testutil.Shuffled(seed)))

			// --- Assert ---
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("effective model depends on scheduling order (-want +got):\n%s", diff)
			}
		})
	}
}

// TestResolution_RepeatedRunsPrintTheSameModel validates that two complete
// application runs over the same directory print identical output.
func TestResolution_RepeatedRunsPrintTheSameModel(t *testing.T) {
	t.Parallel()

	// --- Act ---
	first := testutil.RunIntegrationTest(t, independentAugments, nil)
	second := testutil.RunIntegrationTest(t, independentAugments, nil)

	// --- Assert ---
	require.NoError(t, first.Err, "logs:\n%s", first.LogOutput)
	require.NoError(t, second.Err, "logs:\n%s", second.LogOutput)
	require.Equal(t, first.Output, second.Output)
	require.Contains(t, first.Output, "    container from-left [added-by-augmentation]\n      leaf nested [added-by-augmentation]\n")
}
