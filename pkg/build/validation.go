package build

import (
	"fmt"
	"strings"
)

// Rule inspects a full build snapshot and returns a failure message, or an empty string if the build passes.
// Rules must not mutate the build or perform any I/O.
type Rule func(b Build) string

// Rules is an ordered rule set; failures are reported in rule order
type Rules []Rule

// RequiredKeys have to be present on every committed build
var RequiredKeys = []string{KeyID, KeyProjectID, KeyBuildNum, KeyVCSURL, KeyVCSRevision}

// DefaultRules are the invariants every committed build satisfies
var DefaultRules = Rules{
	RequireKeys(RequiredKeys...),
	RequireRevisionForDeploy,
	RequirePositiveBuildNum,
}

// Validate runs all rules against the same snapshot and returns their failure messages
func Validate(rules Rules, b Build) (messages []string) {
	messages = []string{}
	for _, rule := range rules {
		if message := rule(b); message != "" {
			messages = append(messages, message)
		}
	}
	return messages
}

// ValidateOrError returns a *ValidationError holding all failure messages if any rule fails
func ValidateOrError(rules Rules, b Build) error {
	messages := Validate(rules, b)
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// RequireKeys fails when any of the keys is absent; nil values count as present
func RequireKeys(keys ...string) Rule {
	return func(b Build) string {
		missing := []string{}
		for _, key := range keys {
			if _, ok := b[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return fmt.Sprintf("build is missing required keys %v", strings.Join(missing, ", "))
		}
		return ""
	}
}

// RequireRevisionForDeploy fails for deploy builds without a vcs_revision
func RequireRevisionForDeploy(b Build) string {
	if b.Type() == TypeDeploy && strings.TrimSpace(b.VCSRevision()) == "" {
		return "deploy builds require a non-empty vcs_revision"
	}
	return ""
}

// RequirePositiveBuildNum fails unless build_num is an integer larger than zero
func RequirePositiveBuildNum(b Build) string {
	buildNum, ok := b.BuildNum()
	if !ok {
		return fmt.Sprintf("build_num must be an integer, got %T", b[KeyBuildNum])
	}
	if buildNum <= 0 {
		return fmt.Sprintf("build_num must be positive, got %v", buildNum)
	}
	return ""
}

// RequireNodeCredentials fails when a node is assigned without an address and a private key or password.
// It's not part of DefaultRules; add it to the rule set where nodes are required to carry credentials.
func RequireNodeCredentials(b Build) string {
	if _, ok := b[KeyNode]; !ok || b[KeyNode] == nil {
		return ""
	}
	node := b.Node()
	if node == nil {
		return "node must be a mapping"
	}
	address, _ := node["public_ip_addr"].(string)
	if address == "" {
		address, _ = node["ip_addr"].(string)
	}
	if address == "" {
		return "node requires an ip address"
	}
	privateKey, _ := node["ssh_private_key"].(string)
	password, _ := node["password"].(string)
	if privateKey == "" && password == "" {
		return "node requires an ssh_private_key or password"
	}
	return ""
}
