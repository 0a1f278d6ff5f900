package helpers

import "testing"

func TestIsSingleSegment(t *testing.T) {
	t.Parallel()
	valid := []string{"jre-legacy", "linux-x64", "abc123def", "java-runtime-gamma"}
	for _, value := range valid {
		if !IsSingleSegment(value) {
			t.Fatalf("expected %q to be a valid segment", value)
		}
	}
	invalid := []string{"", ".", "..", "a/b", `a\b`, "/etc", "../x"}
	for _, value := range invalid {
		if IsSingleSegment(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestIsNormalRelPath(t *testing.T) {
	t.Parallel()
	valid := []string{"bin/java", "lib/server/classes.jsa", "legal/java.base/LICENSE"}
	for _, value := range valid {
		if !IsNormalRelPath(value) {
			t.Fatalf("expected %q to be a valid relative path", value)
		}
	}
	invalid := []string{"", "/bin/java", "bin/../../etc/passwd", "./bin", "bin//java", "..", "a/./b"}
	for _, value := range invalid {
		if IsNormalRelPath(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}
