package ftp

import "strings"

// Verb identifies a parsed command.
type Verb int

// Supported command verbs (§4.5). Unrecognized input parses as VerbUnknown.
const (
	VerbUnknown Verb = iota
	VerbCWD
	VerbPWD
	VerbMKD
	VerbRMD
	VerbPORT
	VerbPASV
	VerbDELE
	VerbLIST
	VerbRETR
	VerbSTOR
	VerbQUIT
)

// verbNames maps lowercase command words to their Verb. Length is
// constrained to [3,4] characters, matching the wire command set.
var verbNames = map[string]Verb{
	"cwd":  VerbCWD,
	"pwd":  VerbPWD,
	"mkd":  VerbMKD,
	"rmd":  VerbRMD,
	"port": VerbPORT,
	"pasv": VerbPASV,
	"dele": VerbDELE,
	"list": VerbLIST,
	"retr": VerbRETR,
	"stor": VerbSTOR,
	"quit": VerbQUIT,
}

const (
	cmdMinLen = 3
	cmdMaxLen = 4
)

// Command is a parsed Request: a verb plus its trimmed argument string.
type Command struct {
	Verb Verb
	Args string
}

// ParseCommand classifies a raw request body into a Command. It lowercases
// the command word, splits on the first space, and matches against the
// closed verb set. A request with no space is a bare command word with
// empty Args (e.g. "pwd", "quit"). Requests whose command word falls
// outside [3,4] characters, or that don't match a known verb, parse as
// VerbUnknown with Args holding the trimmed text after the command word.
func ParseCommand(body []byte) Command {
	line := strings.TrimSpace(string(body))
	if line == "" {
		return Command{Verb: VerbUnknown}
	}

	word, args := line, ""
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		word = line[:idx]
		args = strings.TrimSpace(line[idx+1:])
	}
	word = strings.ToLower(word)

	if len(word) < cmdMinLen || len(word) > cmdMaxLen {
		return Command{Verb: VerbUnknown, Args: args}
	}

	verb, ok := verbNames[word]
	if !ok {
		return Command{Verb: VerbUnknown, Args: args}
	}

	return Command{Verb: verb, Args: args}
}

// String returns the canonical uppercase command word for v, or "UNKNOWN".
func (v Verb) String() string {
	for name, candidate := range verbNames {
		if candidate == v {
			return strings.ToUpper(name)
		}
	}
	return "UNKNOWN"
}

// NeedsDataConnection reports whether v requires an open data connection
// before it can execute (§4.3).
func (v Verb) NeedsDataConnection() bool {
	return v == VerbLIST || v == VerbRETR || v == VerbSTOR
}
