package main

import (
	"context"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, name, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email: email,
			Role:  user.RoleStudent,
		}
	}
	usr.Name = name
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err = cli.usrRepo.UpdateOrCreateUser(ctx, usr); err != nil {
		return err
	}
	return nil
}
