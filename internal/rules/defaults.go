package rules

// DefaultConfig is the rule configuration used when no rules file is
// supplied. It covers the four stock policy areas: secrets, PII, prompt
// injection, and risky code constructs.
const DefaultConfig = `# ghostscan default security rules

rules:
  - name: secret-detection
    enabled: true
    threshold: high
    patterns:
      - type: api_key
        regex: "[A-Za-z0-9]{32,}"
      - type: aws_key
        regex: "AKIA[0-9A-Z]{16}"

  - name: pii-detection
    enabled: true
    threshold: medium
    patterns:
      - type: email
        regex: "[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}"
      - type: ssn
        regex: "\\d{3}-\\d{2}-\\d{4}"

  - name: prompt-injection
    enabled: true
    threshold: high
    detectors:
      - ignore_previous_instructions
      - system_prompt_leak

  - name: risky-code
    enabled: false
    threshold: low
    patterns:
      - type: eval
        language: javascript
      - type: exec
        language: python
`

// Default returns the built-in rule set. It panics only if the embedded
// document is itself invalid, which the package tests guard against.
func Default() *RuleSet {
	rs, err := Load([]byte(DefaultConfig))
	if err != nil {
		panic("rules: default config invalid: " + err.Error())
	}
	return rs
}
