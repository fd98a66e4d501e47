package main

import (
	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, uname, email, org, pwd string, isSuper bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	roles := []string{user.RoleLearner}
	if isSuper {
		roles = user.AllRoles
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(user.NewUser{
			Name:            name,
			TenantKey:       org,
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
			Roles:           roles,
		})
		return err
	}

	active := true
	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            name,
		Username:        uname,
		Email:           email,
		IsActive:        &active,
		Roles:           roles,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
