package detect

import "testing"

func TestDialectForPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{".github/workflows/build.yml", DialectGitHubActions},
		{"svc/.github/workflows/release.yaml", DialectGitHubActions},
		{"azure-pipelines.yml", DialectAzureDevOps},
		{"azure-pipelines-prod.yaml", DialectAzureDevOps},
		{"pipelines/service.azure-pipelines.yml", DialectAzureDevOps},
		{"Jenkinsfile", DialectJenkins},
		{"ci/Jenkinsfile.release", DialectJenkins},
		{".travis.yml", DialectTravis},
		{"bamboo-specs/plan.yml", DialectBamboo},
		{"Makefile", DialectUnknown},
		{"scripts/build.sh", DialectUnknown},
		{"azure-pipelines.txt", DialectUnknown},
	}
	for _, tc := range cases {
		if got := DialectForPath(tc.path); got != tc.want {
			t.Errorf("DialectForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestMutableDialect(t *testing.T) {
	if !Mutable(DialectAzureDevOps) {
		t.Fatal("azure_devops must be mutable")
	}
	for _, d := range []string{DialectGitHubActions, DialectJenkins, DialectTravis, DialectBamboo, DialectUnknown} {
		if Mutable(d) {
			t.Fatalf("%s must be audit-only", d)
		}
	}
}
