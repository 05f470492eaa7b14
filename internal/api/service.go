package api

const ServiceName = "simpletwitter.v1.SimpleTwitter"

const (
	MethodSignUp             = "SignUp"
	MethodLogin              = "Login"
	MethodAdminLogin         = "AdminLogin"
	MethodGetCurrentUser     = "GetCurrentUser"
	MethodGetUser            = "GetUser"
	MethodPutAccount         = "PutAccount"
	MethodPutProfile         = "PutProfile"
	MethodRequestMediaUpload = "RequestMediaUpload"
	MethodFollow             = "Follow"
	MethodUnfollow           = "Unfollow"
	MethodTopUsers           = "TopUsers"
	MethodFollowers          = "Followers"
	MethodFollowings         = "Followings"
	MethodAdminListAccounts  = "AdminListAccounts"
)

// FullMethod returns the "/service/method" path gRPC routes on.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
