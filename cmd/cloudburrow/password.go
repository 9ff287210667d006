package main

import "github.com/AlecAivazis/survey/v2"

func askMasterPassword() (string, error) {
	var password string
	prompt := &survey.Password{Message: "Master Password:"}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return password, nil
}
