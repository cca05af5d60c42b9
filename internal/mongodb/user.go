package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// RoleGrant authorizes a user to a role within a database
type RoleGrant struct {
	Role string `bson:"role" json:"role"`
	DB   string `bson:"db" json:"db"`
}

// User is a database user
type User struct {
	Name     string      `json:"user"`
	Password string      `json:"-"`
	Roles    []RoleGrant `json:"roles"`
}

func (c *client) CreateUser(ctx context.Context, database string, user User) error {
	return c.mc.Database(database).RunCommand(ctx, createUserCommand(user)).Err()
}

func createUserCommand(user User) bson.D {
	roles := user.Roles
	if roles == nil {
		roles = []RoleGrant{}
	}
	return bson.D{
		{Key: "createUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: roles},
	}
}

type usersInfoResponse struct {
	Users []struct {
		User  string      `bson:"user"`
		DB    string      `bson:"db"`
		Roles []RoleGrant `bson:"roles"`
	} `bson:"users"`
}

// FindUser looks up the named user defined on the database
// The returned bool reports whether the user exists
func (c *client) FindUser(ctx context.Context, database, name string) (User, bool, error) {
	var res usersInfoResponse
	if err := c.mc.Database(database).RunCommand(ctx, usersInfoCommand(database, name)).Decode(&res); err != nil {
		return User{}, false, err
	}

	for _, u := range res.Users {
		if u.User == name && u.DB == database {
			return User{Name: u.User, Roles: u.Roles}, true, nil
		}
	}
	return User{}, false, nil
}

// UserNames lists the names of every user defined on the database
func (c *client) UserNames(ctx context.Context, database string) ([]string, error) {
	var res usersInfoResponse
	if err := c.mc.Database(database).RunCommand(ctx, bson.D{{Key: "usersInfo", Value: 1}}).Decode(&res); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(res.Users))
	for _, u := range res.Users {
		if u.DB == database {
			names = append(names, u.User)
		}
	}
	return names, nil
}

func usersInfoCommand(database, name string) bson.D {
	return bson.D{
		{Key: "usersInfo", Value: bson.D{
			{Key: "user", Value: name},
			{Key: "db", Value: database},
		}},
	}
}
