package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"path/filepath"
	"strings"

	"vantage/internal/models"

	"gorm.io/gorm"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// TemplatesDir 邮件模板目录，默认 web/templates/email
	TemplatesDir string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type MailService struct {
	config  MailConfig
	Enabled bool
	send    sendFunc
}

func NewMailService(cfg MailConfig) *MailService {
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = filepath.Join("web", "templates", "email")
	}
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP settings.")
	}
	return &MailService{config: cfg, Enabled: enabled, send: smtp.SendMail}
}

// headerValue 合并空白，邮件头的值里不能出现换行
func headerValue(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}
	subject = headerValue(subject)
	for i, addr := range to {
		to[i] = headerValue(addr)
	}

	go func() {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Vantage <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.config.From, subject, mime, body))

		if err := s.send(addr, auth, s.config.From, to, msg); err != nil {
			log.Printf("❌ Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("✅ Email sent to %v: %s", to, subject)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join(s.config.TemplatesDir, templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendReplyNotification 通知评论作者有人回复了他
func (s *MailService) SendReplyNotification(email, replier, ideaTitle, replyContent, originalContent, ideaLink string) {
	data := map[string]string{
		"Replier":         replier,
		"IdeaTitle":       ideaTitle,
		"ReplyContent":    replyContent,
		"OriginalContent": originalContent,
		"IdeaLink":        ideaLink,
	}
	body, err := s.parseTemplate("reply.html", data)
	if err != nil {
		log.Printf("Error rendering reply email: %v", err)
		return
	}
	s.sendAsync([]string{email}, replier+" replied to your comment on \""+ideaTitle+"\"", body)
}

// ReplyNotifier 评论被回复后的通知钩子
type ReplyNotifier interface {
	NotifyReply(ctx context.Context, parent, reply *models.Comment)
}

// MailReplyNotifier 给开启了邮件提醒的评论作者发邮件
type MailReplyNotifier struct {
	db       *gorm.DB
	mail     *MailService
	profiles ProfileLookup
	siteURL  string
}

func NewMailReplyNotifier(db *gorm.DB, mail *MailService, profiles ProfileLookup, siteURL string) *MailReplyNotifier {
	return &MailReplyNotifier{db: db, mail: mail, profiles: profiles, siteURL: strings.TrimSuffix(siteURL, "/")}
}

func (n *MailReplyNotifier) NotifyReply(ctx context.Context, parent, reply *models.Comment) {
	if !n.mail.Enabled || parent.UserID == reply.UserID {
		return
	}

	var pref models.UserProfile
	if err := n.db.WithContext(ctx).Where("user_id = ?", parent.UserID).First(&pref).Error; err != nil || !pref.EmailPref {
		return
	}

	recipient, err := n.profiles.Profile(ctx, parent.UserID)
	if err != nil || recipient.Email == "" {
		return
	}

	replier := "Someone"
	if p, err := n.profiles.Profile(ctx, reply.UserID); err == nil && p.DisplayName() != "" {
		replier = p.DisplayName()
	}

	var idea models.Idea
	if err := n.db.WithContext(ctx).Select("id", "title").First(&idea, reply.IdeaID).Error; err != nil {
		return
	}

	link := fmt.Sprintf("%s/ideas/%d", n.siteURL, idea.ID)
	n.mail.SendReplyNotification(recipient.Email, replier, idea.Title, reply.Content, parent.Content, link)
}
