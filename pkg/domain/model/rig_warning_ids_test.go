// 指示: miu200521358
package model

import "testing"

func TestRigWarningIDsAreNonEmptyAndUnique(t *testing.T) {
	if ModuleTagAttributeName != "MU_RIG_module_tag" {
		t.Fatalf("tag attribute name mismatch: got=%s want=%s", ModuleTagAttributeName, "MU_RIG_module_tag")
	}

	warningIDs := []string{
		RigWarningCollinearChainPlane,
		RigWarningPoleVectorFallback,
		RigWarningOrientationUpFallback,
		RigWarningMirrorSkipped,
		RigWarningDuplicateModuleSkipped,
		RigWarningTagRestoreSkipped,
	}

	seen := map[string]struct{}{}
	for _, warningID := range warningIDs {
		if warningID == "" {
			t.Fatalf("warning id should not be empty")
		}
		if _, exists := seen[warningID]; exists {
			t.Fatalf("warning id should be unique: %s", warningID)
		}
		seen[warningID] = struct{}{}
	}
}
