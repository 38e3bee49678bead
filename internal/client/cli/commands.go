package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/filex"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, username, email, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	if u == nil {
		u = &models.User{Username: username, Role: "user"}
	}
	a.printf("Registered %s (%s), you can log in now\n", u.Username, u.Role)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		a.report(err)
		return err
	}

	a.api.SetToken(s.Token)
	a.user = s.User
	if a.user == nil {
		a.user = &models.User{Username: username}
	}
	a.printf("Logged in as %s\n", a.user.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.forget()
	a.printf("Logged out\n")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	a.user = u
	a.printf("%s role=%s id=%d\n", u.Username, u.Role, u.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	files, err := a.api.ListFiles(ctx)
	if err != nil {
		a.report(err)
		return err
	}

	if len(files) == 0 {
		a.printf("No files uploaded yet\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tBY\tUPLOADED")
	for _, f := range files {
		by := f.UploadedByUsername
		if by == "" {
			by = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			f.ID, f.OriginalName, models.HumanSize(f.Size), by, f.UploadedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) Upload(ctx context.Context, path string) error {
	st, err := os.Stat(path)
	if err != nil {
		a.report(err)
		return err
	}
	if st.IsDir() {
		err := fmt.Errorf("%s is a directory", path)
		a.report(err)
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		a.report(err)
		return err
	}
	defer f.Close()

	uploaded, err := a.api.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		a.report(err)
		return err
	}

	a.printf("Uploaded %s as #%d (%s)\n", uploaded.OriginalName, uploaded.ID, models.HumanSize(uploaded.Size))
	return nil
}

// Download writes file id to dest. An empty dest uses the stored file name
// in the current directory. Partial files are removed on failure.
func (a *App) Download(ctx context.Context, id int64, dest string) error {
	if dest == "" {
		dest = a.defaultName(ctx, id)
	}

	if filex.Exists(dest) {
		err := fmt.Errorf("%s already exists", dest)
		a.report(err)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		a.report(err)
		return err
	}
	tmpName := tmp.Name()

	n, err := a.api.Download(ctx, id, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, dest)
	}
	if err != nil {
		_, _ = filex.RemoveIfExists(tmpName)
		a.report(err)
		return err
	}

	a.printf("Saved %s (%s)\n", dest, models.HumanSize(n))
	return nil
}

func (a *App) defaultName(ctx context.Context, id int64) string {
	files, err := a.api.ListFiles(ctx)
	if err == nil {
		for _, f := range files {
			if f.ID != id {
				continue
			}
			if name := filepath.Base(f.OriginalName); name != "." && name != string(filepath.Separator) {
				return name
			}
		}
	}
	return fmt.Sprintf("file-%d", id)
}

func (a *App) Delete(ctx context.Context, id int64) error {
	if err := a.api.Delete(ctx, id); err != nil {
		a.report(err)
		return err
	}
	a.printf("Deleted #%d\n", id)
	return nil
}

// Share mails a link to file id. Without a message on the command line the
// user is prompted for an optional one.
func (a *App) Share(ctx context.Context, id int64, email, message string) error {
	if email == "" {
		err := errors.New("recipient email is required")
		a.report(err)
		return err
	}

	if message == "" {
		m, err := GetMultiline(a.reader, "Message (optional)", a.out)
		if err != nil {
			return err
		}
		message = m
	}

	res, err := a.api.Share(ctx, id, email, message)
	if err != nil {
		a.report(err)
		return err
	}

	a.printf("%s\n", res.Message)
	if res.DownloadLink != "" {
		a.printf("%s\n", res.DownloadLink)
	}
	return nil
}
