package powercomp

import "fmt"

const bashScript = `# bash completion for system76-power
_system76_power() {
    local suggestions
    suggestions=$(copr-release suggest -- "${COMP_WORDS[@]:1:COMP_CWORD-1}" 2>/dev/null)
    COMPREPLY=($(compgen -W "${suggestions}" -- "${COMP_WORDS[COMP_CWORD]}"))
}
complete -F _system76_power system76-power
`

const zshScript = `#compdef system76-power
# zsh completion for system76-power
_system76_power() {
    local -a suggestions
    suggestions=(${(f)"$(copr-release suggest -- ${words[2,CURRENT-1]} 2>/dev/null)"})
    _describe 'system76-power' suggestions
}
compdef _system76_power system76-power
`

const fishScript = `# fish completion for system76-power
function __system76_power_suggest
    set -l tokens (commandline -opc)
    copr-release suggest -- $tokens[2..-1] 2>/dev/null
end
complete -c system76-power -f -a '(__system76_power_suggest)'
`

// Script renders the completion script for the given shell.
// Supported shells: bash, zsh, fish.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashScript, nil
	case "zsh":
		return zshScript, nil
	case "fish":
		return fishScript, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", shell)
	}
}
