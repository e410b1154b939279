package console

import "github.com/mesabjorn/anything-db/internal/validation"

// AskYesNo asks question until the answer maps to true or false
func AskYesNo(p Prompter, r Reporter, question string) (bool, error) {
	for {
		answer, err := p.Prompt(question)
		if err != nil {
			return false, err
		}
		ok, err := validation.ParseBool(answer)
		if err != nil {
			r.Warn(err.Error())
			continue
		}
		return ok, nil
	}
}
