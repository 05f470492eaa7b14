package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/simpletwitter/internal/api"
	"github.com/dmitrijs2005/simpletwitter/internal/client/client"
	"github.com/dmitrijs2005/simpletwitter/internal/filex"
	"github.com/dmitrijs2005/simpletwitter/internal/netx"
)

const maxMediaSize = 5 << 20

// putPresigned is a test seam for the object-storage upload.
var putPresigned = netx.PutPresigned

// UploadMedia uploads the image at path as the caller's avatar or cover:
// it asks the server for a presigned URL, PUTs the bytes to storage and
// stores the returned key on the profile.
func (a *App) UploadMedia(ctx context.Context, kind, path string) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	data, err := filex.ReadLimited(path, maxMediaSize)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	me, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	up, err := a.client.RequestMediaUpload(ctx, kind)
	if err != nil {
		return err
	}

	if err := putPresigned(ctx, http.DefaultClient, up.URL, data); err != nil {
		return err
	}

	req := &api.PutProfileRequest{ID: a.userID, Name: me.Name, Introduction: me.Introduction}
	if kind == "cover" {
		req.Cover = up.Key
	} else {
		req.Avatar = up.Key
	}
	if _, err := a.client.PutProfile(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s (%d bytes)\n", kind, len(data))
	return nil
}
