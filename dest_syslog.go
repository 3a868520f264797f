package evlog

import (
	"fmt"
	"log/syslog"
	"strings"
	"sync"
)

// syslogConn is the subset of *syslog.Writer the destination needs.
// Tests swap dialSyslog to avoid requiring a local syslog daemon.
type syslogConn interface {
	Debug(m string) error
	Info(m string) error
	Err(m string) error
	Close() error
}

var dialSyslog = func(facility syslog.Priority, tag string) (syslogConn, error) {
	w, err := syslog.New(facility|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// syslogDest relays lines to syslog with the level mapped to severity.
// The connection dials lazily on first write.
type syslogDest struct {
	tag      string
	facility syslog.Priority

	mu   sync.Mutex
	conn syslogConn
}

func newSyslogDest(tag string, facility syslog.Priority) *syslogDest {
	return &syslogDest{tag: tag, facility: facility}
}

func (d *syslogDest) Name() string { return "syslog" }

func (d *syslogDest) WriteLine(level Level, line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		conn, err := dialSyslog(d.facility, d.tag)
		if err != nil {
			return err
		}
		d.conn = conn
	}
	switch level {
	case LevelDebug:
		return d.conn.Debug(line)
	case LevelError:
		return d.conn.Err(line)
	default:
		return d.conn.Info(line)
	}
}

func (d *syslogDest) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// parseFacility maps a facility name to its syslog priority. Empty
// input means "user".
func parseFacility(name string) (syslog.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "user":
		return syslog.LOG_USER, nil
	case "daemon":
		return syslog.LOG_DAEMON, nil
	case "auth":
		return syslog.LOG_AUTH, nil
	case "authpriv":
		return syslog.LOG_AUTHPRIV, nil
	case "cron":
		return syslog.LOG_CRON, nil
	case "ftp":
		return syslog.LOG_FTP, nil
	case "kern":
		return syslog.LOG_KERN, nil
	case "lpr":
		return syslog.LOG_LPR, nil
	case "mail":
		return syslog.LOG_MAIL, nil
	case "news":
		return syslog.LOG_NEWS, nil
	case "syslog":
		return syslog.LOG_SYSLOG, nil
	case "uucp":
		return syslog.LOG_UUCP, nil
	case "local0":
		return syslog.LOG_LOCAL0, nil
	case "local1":
		return syslog.LOG_LOCAL1, nil
	case "local2":
		return syslog.LOG_LOCAL2, nil
	case "local3":
		return syslog.LOG_LOCAL3, nil
	case "local4":
		return syslog.LOG_LOCAL4, nil
	case "local5":
		return syslog.LOG_LOCAL5, nil
	case "local6":
		return syslog.LOG_LOCAL6, nil
	case "local7":
		return syslog.LOG_LOCAL7, nil
	default:
		return 0, fmt.Errorf("evlog: unknown syslog facility %q", name)
	}
}
