/*
Package taskflowsdk is a client for the TaskFlow project and task API.

# Client vs Session

Client covers the endpoints that need no access token: registration, login,
token refresh, the password reset flow and health checks. Register and Login
return a Session, which carries the token pair and refreshes the access token
shortly before it expires.

	client := taskflowsdk.NewClient("http://localhost:8080")

	session, err := client.Login(ctx, "ada@example.com", "secret123")
	if err != nil {
		return err
	}

	project, err := session.CreateProject(ctx, taskflowsdk.CreateProjectRequest{
		Name: "Roadmap",
	})

	task, err := session.CreateTask(ctx, project.ID, taskflowsdk.CreateTaskRequest{
		Title: "Draft Q3 plan",
	})

	task, err = session.MoveTask(ctx, task.ID, taskflowsdk.StatusInProgress)

# Password reset

	err := client.ForgotPassword(ctx, email)
	resetToken, err := client.VerifyOTP(ctx, email, codeFromMail)
	err = client.ResetPassword(ctx, resetToken, "new-password")

A successful reset signs the user out everywhere.

# Real-time events

	stream, err := session.Subscribe(ctx, project.ID)
	defer stream.Close()
	for {
		ev, err := stream.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case taskflowsdk.EventTaskCreated, taskflowsdk.EventTaskUpdated:
			t, _ := ev.Task()
			_ = t
		case taskflowsdk.EventTaskDeleted:
			ref, _ := ev.Ref()
			_ = ref
		}
	}

# Errors

Non-success responses become *APIError carrying the HTTP status and the
server message. Use IsUnauthorized, IsForbidden, IsNotFound and IsConflict to
branch on them.
*/
package taskflowsdk
