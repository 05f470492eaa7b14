package grpc

import (
	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/server/models"
)

// route is the access rule of one RPC. Public routes skip the auth gate;
// the rest need a token whose account holds role.
type route struct {
	public bool
	role   models.Role
}

var routes = map[string]route{
	api.FullMethod(api.MethodSignUp):     {public: true},
	api.FullMethod(api.MethodLogin):      {public: true},
	api.FullMethod(api.MethodAdminLogin): {public: true},

	api.FullMethod(api.MethodGetCurrentUser):     {role: models.RoleUser},
	api.FullMethod(api.MethodGetUser):            {role: models.RoleUser},
	api.FullMethod(api.MethodPutAccount):         {role: models.RoleUser},
	api.FullMethod(api.MethodPutProfile):         {role: models.RoleUser},
	api.FullMethod(api.MethodRequestMediaUpload): {role: models.RoleUser},
	api.FullMethod(api.MethodFollow):             {role: models.RoleUser},
	api.FullMethod(api.MethodUnfollow):           {role: models.RoleUser},
	api.FullMethod(api.MethodTopUsers):           {role: models.RoleUser},
	api.FullMethod(api.MethodFollowers):          {role: models.RoleUser},
	api.FullMethod(api.MethodFollowings):         {role: models.RoleUser},

	api.FullMethod(api.MethodAdminListAccounts): {role: models.RoleAdmin},
}
